package caseform

import (
	"fmt"
	"sync"

	"case-collector/internal/common/validation"
	"case-collector/internal/models"
)

// PayloadSchema is the JSON Schema of the document body POSTed to the sink.
// It only checks shape: keys, JSON types and a non-empty month list.
const PayloadSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "CaseSubmission",
  "type": "object",
  "definitions": {
    "text": {"type": "string"},
    "count": {"type": ["integer", "null"]},
    "tags": {"type": "array", "items": {"type": "string"}},
    "month": {
      "type": "object",
      "required": ["mes_ano", "investimento", "leads", "cpl", "agendamentos", "comparecimentos", "fechamentos", "faturamento_mes"],
      "properties": {
        "mes_ano": {"$ref": "#/definitions/text"},
        "investimento": {"$ref": "#/definitions/text"},
        "leads": {"$ref": "#/definitions/count"},
        "cpl": {"$ref": "#/definitions/text"},
        "agendamentos": {"$ref": "#/definitions/count"},
        "comparecimentos": {"$ref": "#/definitions/count"},
        "fechamentos": {"$ref": "#/definitions/count"},
        "faturamento_mes": {"$ref": "#/definitions/text"},
        "acao_mes": {"$ref": "#/definitions/text"}
      }
    }
  },
  "required": [
    "nome_clinica", "cidade_estado", "tipo_clinica", "perfil_cliente", "tempo_parceria",
    "dor", "faturamento_antes", "origem_cliente", "mkt_anterior",
    "data_inicio", "data_fim", "meses_analisados", "meses",
    "estrategia_c", "estrategia_h", "estrategia_a", "estrategia_v", "estrategia_i",
    "resumo_investimento", "resumo_faturamento", "resumo_lucro", "resumo_roi"
  ],
  "properties": {
    "nome_clinica": {"$ref": "#/definitions/text"},
    "cidade_estado": {"$ref": "#/definitions/text"},
    "tipo_clinica": {"$ref": "#/definitions/text"},
    "tipo_clinica_outro": {"$ref": "#/definitions/text"},
    "perfil_cliente": {"$ref": "#/definitions/text"},
    "tempo_parceria": {"$ref": "#/definitions/count"},
    "dor": {"$ref": "#/definitions/tags"},
    "dor_outro": {"$ref": "#/definitions/text"},
    "faturamento_antes": {"$ref": "#/definitions/text"},
    "origem_cliente": {"$ref": "#/definitions/text"},
    "origem_cliente_outro": {"$ref": "#/definitions/text"},
    "mkt_anterior": {"$ref": "#/definitions/text"},
    "data_inicio": {"$ref": "#/definitions/text"},
    "data_fim": {"$ref": "#/definitions/text"},
    "meses_analisados": {"$ref": "#/definitions/count"},
    "meses": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/month"}},
    "estrategia_c": {"$ref": "#/definitions/tags"},
    "estrategia_c_outro": {"$ref": "#/definitions/text"},
    "estrategia_h": {"$ref": "#/definitions/tags"},
    "estrategia_h_outro": {"$ref": "#/definitions/text"},
    "estrategia_a": {"$ref": "#/definitions/tags"},
    "estrategia_a_outro": {"$ref": "#/definitions/text"},
    "estrategia_v": {"$ref": "#/definitions/tags"},
    "estrategia_v_outro": {"$ref": "#/definitions/text"},
    "estrategia_i": {"$ref": "#/definitions/tags"},
    "estrategia_i_outro": {"$ref": "#/definitions/text"},
    "resumo_investimento": {"$ref": "#/definitions/text"},
    "resumo_faturamento": {"$ref": "#/definitions/text"},
    "resumo_lucro": {"$ref": "#/definitions/text"},
    "resumo_roi": {"$ref": "#/definitions/text"},
    "evolucao_tm_de": {"$ref": "#/definitions/text"},
    "evolucao_tm_para": {"$ref": "#/definitions/text"},
    "evolucao_tc_de": {"$ref": "#/definitions/text"},
    "evolucao_tc_para": {"$ref": "#/definitions/text"},
    "evolucao_cpl_de": {"$ref": "#/definitions/text"},
    "evolucao_cpl_para": {"$ref": "#/definitions/text"},
    "evolucao_fat_de": {"$ref": "#/definitions/text"},
    "evolucao_fat_para": {"$ref": "#/definitions/text"},
    "resultado_surpreendente": {"$ref": "#/definitions/text"},
    "marco_importante": {"$ref": "#/definitions/text"},
    "depoimento_cliente": {"$ref": "#/definitions/text"},
    "momento_virada": {"$ref": "#/definitions/text"},
    "medo_cliente": {"$ref": "#/definitions/text"},
    "superacao_medo": {"$ref": "#/definitions/text"},
    "contexto_mercado": {"$ref": "#/definitions/text"},
    "contexto_desafio": {"$ref": "#/definitions/text"},
    "tem_anexo": {"$ref": "#/definitions/text"},
    "publicar_nome": {"$ref": "#/definitions/text"}
  }
}`

var (
	payloadOnce   sync.Once
	payloadSchema *validation.JSONSchema
	payloadErr    error
)

func compiledPayloadSchema() (*validation.JSONSchema, error) {
	payloadOnce.Do(func() {
		payloadSchema, payloadErr = validation.CompileSchema(PayloadSchema)
	})
	return payloadSchema, payloadErr
}

// ValidatePayload checks raw JSON against PayloadSchema. Malformed JSON is
// an error, not a failed Result.
func ValidatePayload(raw []byte) (validation.Result, error) {
	s, err := compiledPayloadSchema()
	if err != nil {
		return validation.Result{}, err
	}
	return s.ValidateBytes(raw)
}

// ValidateDocumentPayload checks that doc serializes to a conforming body.
func ValidateDocumentPayload(doc models.CaseSubmission) (validation.Result, error) {
	s, err := compiledPayloadSchema()
	if err != nil {
		return validation.Result{}, err
	}
	res, err := s.ValidateValue(doc)
	if err != nil {
		return validation.Result{}, fmt.Errorf("payload contract: %w", err)
	}
	return res, nil
}
