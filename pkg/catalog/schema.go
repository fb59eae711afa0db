// pkg/catalog/schema.go
package catalog

// Kind tells a rendering layer how a question is answered.
type Kind string

const (
	KindSingle Kind = "single"
	KindMulti  Kind = "multi"
)

// RequiredQuestions are the questions the case form reads, with the kind
// each must have.
var RequiredQuestions = map[string]Kind{
	"tipo_clinica":   KindSingle,
	"perfil_cliente": KindSingle,
	"origem_cliente": KindSingle,
	"mkt_anterior":   KindSingle,
	"sim_nao":        KindSingle,
	"dor":            KindMulti,
	"estrategia_c":   KindMulti,
	"estrategia_h":   KindMulti,
	"estrategia_a":   KindMulti,
	"estrategia_v":   KindMulti,
	"estrategia_i":   KindMulti,
}

// OtherValue is the option that unlocks a question's free-text supplement.
const OtherValue = "outro"

type Catalog struct {
	Version   string     `json:"version"`
	Questions []Question `json:"questions"`
}

type Question struct {
	ID         string   `json:"id"`
	Section    string   `json:"section"`
	Title      string   `json:"title"`
	Kind       Kind     `json:"kind"`
	Options    []Option `json:"options"`
	OtherField string   `json:"otherField,omitempty"`
}

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
