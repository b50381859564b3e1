package catalogs

// Price levels.
const (
	LevelType    = 2 // price applies to a service type
	LevelService = 3 // price applies to an individual service
)

// Price is one row of the indicative price table. Service holds either a
// service name or a service type name depending on Level.
type Price struct {
	Service string  `json:"Service" yaml:"service"`
	Unit    string  `json:"Unit" yaml:"unit"`
	Median  float64 `json:"Median" yaml:"median"`
	Min     float64 `json:"Min" yaml:"min"`
	Max     float64 `json:"Max" yaml:"max"`
	Level   int     `json:"Level" yaml:"level"`
}

