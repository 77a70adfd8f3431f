package remoteapi

// SetMaxBody reemplaza el límite de tamaño de respuesta (solo tests).
func (c *Client) SetMaxBody(n int64) { c.maxBody = n }
