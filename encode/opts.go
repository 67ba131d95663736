package encode

type EncodeOption func(*EncState)

// EncodeColors colors keys, values and comments with c.
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
