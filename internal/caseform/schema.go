package caseform

import (
	"fmt"
	"strings"

	"case-collector/internal/common/validation"
	"case-collector/internal/models"
	"case-collector/pkg/catalog"

	"github.com/go-playground/validator/v10"
)

// fieldMessages is the display message for each top-level field, whatever
// rule failed.
var fieldMessages = map[string]string{
	"nome_clinica":        "Nome da clínica é obrigatório",
	"cidade_estado":       "Cidade/Estado é obrigatório",
	"tipo_clinica":        "Tipo de clínica é obrigatório",
	"perfil_cliente":      "Perfil do cliente é obrigatório",
	"tempo_parceria":      "Tempo de parceria deve ser pelo menos 1 mês",
	"dor":                 "Selecione pelo menos uma dor/desafio",
	"faturamento_antes":   "Faturamento antes é obrigatório",
	"origem_cliente":      "Origem do cliente é obrigatória",
	"mkt_anterior":        "Experiência anterior com marketing é obrigatória",
	"data_inicio":         "Data de início é obrigatória",
	"data_fim":            "Data de fim é obrigatória",
	"meses_analisados":    "Total de meses analisados é obrigatório",
	"meses":               "Adicione pelo menos um mês de dados",
	"resumo_investimento": "Investimento total é obrigatório",
	"resumo_faturamento":  "Faturamento total é obrigatório",
	"resumo_lucro":        "Lucro líquido é obrigatório",
	"resumo_roi":          "ROI médio é obrigatório",
	"tem_anexo":           "Selecione sim ou não",
	"publicar_nome":       "Selecione sim ou não",
}

var monthMessages = map[string]string{
	"mes_ano":         "Mês/Ano é obrigatório",
	"investimento":    "Investimento é obrigatório",
	"leads":           "Leads deve ser um número positivo",
	"cpl":             "CPL é obrigatório",
	"agendamentos":    "Agendamentos deve ser um número positivo",
	"comparecimentos": "Comparecimentos deve ser um número positivo",
	"fechamentos":     "Fechamentos deve ser um número positivo",
	"faturamento_mes": "Faturamento do mês é obrigatório",
}

func messageFor(path, field, _ string) string {
	if strings.HasPrefix(path, string(FieldMonths)+"[") && strings.Contains(path, ".") {
		return monthMessages[field]
	}
	return fieldMessages[field]
}

// Schema checks a case submission against the form rules. It is safe for
// concurrent use.
type Schema struct {
	catalog   *catalog.Catalog
	validator *validation.StructValidator
}

// NewSchema builds a schema whose enum rules are backed by cat. A nil
// catalogue uses catalog.Default().
func NewSchema(cat *catalog.Catalog) (*Schema, error) {
	if cat == nil {
		cat = catalog.Default()
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}

	v, err := validation.NewStructValidator(messageFor)
	if err != nil {
		return nil, fmt.Errorf("build validator: %w", err)
	}

	// choice=<question> checks membership in the question's options.
	err = v.RegisterRule("choice", func(fl validator.FieldLevel) bool {
		return cat.Allows(fl.Param(), fl.Field().String())
	})
	if err != nil {
		return nil, fmt.Errorf("register choice rule: %w", err)
	}

	return &Schema{catalog: cat, validator: v}, nil
}

// Validate reports every violated field, each with the first failing rule.
// An empty error list means the document is accepted as a whole.
func (s *Schema) Validate(doc models.CaseSubmission) validation.Result {
	return s.validator.Validate(&doc)
}

func (s *Schema) Catalog() *catalog.Catalog {
	return s.catalog
}
