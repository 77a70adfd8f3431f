// Package normalize traduce las respuestas JSON de la API de inventario a las formas
// canónicas de entity (Product, Movement, User, Page).
//
// La API no es consistente: un mismo listado puede llegar como
//
//	{"data": {"docs": [...], "total": n, "totalPages": n}}   nestedDocs
//	{"docs": [...], "total": n, "totalPages": n}             docs
//	[...]                                                    bareArray
//	{"data": [...]}                                          nestedArray
//	{"produtos": [...]}                                      produtosKey (estoque-baixo)
//
// y los registros usan tanto nombres de la API (nome_produto, estoque, marca...) como
// nombres legados (nome, quantidade, fabricante...). Las formas se prueban en ese orden;
// si ninguna coincide el resultado es un envelope vacío con totalPages = 1.
//
// Nada en este paquete devuelve error: un JSON inesperado se degrada a valores vacíos y
// placeholders para que la vista siempre pueda renderizarse.
package normalize
