package inventory

// Params constantes de negocio de la analítica. Los valores por defecto son los de
// referencia; config los puede sobrescribir.
type Params struct {
	CorteA float64 // participación acumulada máxima de la clase A
	CorteB float64 // participación acumulada máxima de la clase B

	// ABCEstricto aplica los cortes también al producto de mayor valor,
	// que de otro modo siempre es A.
	ABCEstricto bool

	SeveridadAlta  float64 // impacto relativo mínimo para severidad Alta
	SeveridadMedia float64 // impacto relativo mínimo para severidad Media

	UmbralStockBajo     float64
	UmbralStockExcesivo float64
	TopCostosos         int
}

// DefaultParams devuelve los parámetros de referencia (ABC 80/95, severidad 5%/2%).
func DefaultParams() Params {
	return Params{
		CorteA:              0.80,
		CorteB:              0.95,
		SeveridadAlta:       0.05,
		SeveridadMedia:      0.02,
		UmbralStockBajo:     10,
		UmbralStockExcesivo: 100,
		TopCostosos:         5,
	}
}
