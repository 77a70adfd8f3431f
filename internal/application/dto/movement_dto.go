package dto

// MovementForm entrada de alta y edición de movimentações.
// responsavelId vacío se completa con el usuario de la sesión.
type MovementForm struct {
	Type          string `json:"tipo" validate:"required,oneof=ENTRADA SAIDA"`
	ProductID     string `json:"produtoId" validate:"required"`
	Quantity      int    `json:"quantidade" validate:"gt=0"`
	Date          string `json:"data" validate:"required,datetime=2006-01-02"`
	ResponsibleID string `json:"responsavelId" validate:"required"`
	Note          string `json:"observacao"`
}

// MovementReportQuery período de GET /api/reports/movements (YYYY-MM-DD).
type MovementReportQuery struct {
	From string `query:"dataInicio"`
	To   string `query:"dataFim"`
}
