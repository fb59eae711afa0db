package caseform

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"case-collector/internal/models"
)

type valueKind int

const (
	kindText valueKind = iota
	kindCount
	kindTags
)

// accessor reads and writes one field of R. get returns a string, an int,
// nil (unset count) or a copy of a tag set.
type accessor[R any] struct {
	kind valueKind
	get  func(*R) interface{}
	set  func(*R, interface{}) error
}

func text[R any, T ~string](field func(*R) *T) accessor[R] {
	return accessor[R]{
		kind: kindText,
		get:  func(r *R) interface{} { return string(*field(r)) },
		set: func(r *R, v interface{}) error {
			s, err := coerceText(v)
			if err != nil {
				return err
			}
			*field(r) = T(s)
			return nil
		},
	}
}

func count[R any](field func(*R) **int) accessor[R] {
	return accessor[R]{
		kind: kindCount,
		get: func(r *R) interface{} {
			if p := *field(r); p != nil {
				return *p
			}
			return nil
		},
		set: func(r *R, v interface{}) error {
			n, err := coerceCount(v)
			if err != nil {
				return err
			}
			*field(r) = n
			return nil
		},
	}
}

func tags[R any](field func(*R) *[]string) accessor[R] {
	return accessor[R]{
		kind: kindTags,
		get: func(r *R) interface{} {
			src := *field(r)
			out := make([]string, len(src))
			copy(out, src)
			return out
		},
		set: func(r *R, v interface{}) error {
			t, err := coerceTags(v)
			if err != nil {
				return err
			}
			*field(r) = t
			return nil
		},
	}
}

type submission = models.CaseSubmission
type monthRecord = models.MonthRecord

var docAccessors = map[Field]accessor[submission]{
	"nome_clinica":       text(func(d *submission) *string { return &d.ClinicName }),
	"cidade_estado":      text(func(d *submission) *string { return &d.CityState }),
	"tipo_clinica":       text(func(d *submission) *models.ClinicType { return &d.ClinicType }),
	"tipo_clinica_outro": text(func(d *submission) *string { return &d.ClinicTypeOther }),
	"perfil_cliente":     text(func(d *submission) *models.ClientProfile { return &d.ClientProfile }),
	"tempo_parceria":     count(func(d *submission) **int { return &d.PartnershipMonths }),

	FieldPainPoints:        tags(func(d *submission) *[]string { return &d.PainPoints }),
	"dor_outro":            text(func(d *submission) *string { return &d.PainPointsOther }),
	"faturamento_antes":    text(func(d *submission) *string { return &d.RevenueBefore }),
	"origem_cliente":       text(func(d *submission) *models.AcquisitionChannel { return &d.AcquisitionChannel }),
	"origem_cliente_outro": text(func(d *submission) *string { return &d.AcquisitionOther }),
	"mkt_anterior":         text(func(d *submission) *models.PriorMarketing { return &d.PriorMarketing }),

	"data_inicio":      text(func(d *submission) *string { return &d.StartDate }),
	"data_fim":         text(func(d *submission) *string { return &d.EndDate }),
	"meses_analisados": count(func(d *submission) **int { return &d.MonthsAnalyzed }),

	FieldStrategyContent:  tags(func(d *submission) *[]string { return &d.StrategyContent }),
	"estrategia_c_outro":  text(func(d *submission) *string { return &d.StrategyContentOther }),
	FieldStrategyHumanize: tags(func(d *submission) *[]string { return &d.StrategyHumanize }),
	"estrategia_h_outro":  text(func(d *submission) *string { return &d.StrategyHumanizeOther }),
	FieldStrategyAds:      tags(func(d *submission) *[]string { return &d.StrategyAds }),
	"estrategia_a_outro":  text(func(d *submission) *string { return &d.StrategyAdsOther }),
	FieldStrategySales:    tags(func(d *submission) *[]string { return &d.StrategySales }),
	"estrategia_v_outro":  text(func(d *submission) *string { return &d.StrategySalesOther }),
	FieldStrategyIntel:    tags(func(d *submission) *[]string { return &d.StrategyIntel }),
	"estrategia_i_outro":  text(func(d *submission) *string { return &d.StrategyIntelOther }),

	"resumo_investimento":     text(func(d *submission) *string { return &d.TotalAdSpend }),
	"resumo_faturamento":      text(func(d *submission) *string { return &d.TotalRevenue }),
	"resumo_lucro":            text(func(d *submission) *string { return &d.NetProfit }),
	"resumo_roi":              text(func(d *submission) *string { return &d.AverageROI }),
	"evolucao_tm_de":          text(func(d *submission) *string { return &d.TicketFrom }),
	"evolucao_tm_para":        text(func(d *submission) *string { return &d.TicketTo }),
	"evolucao_tc_de":          text(func(d *submission) *string { return &d.ConversionFrom }),
	"evolucao_tc_para":        text(func(d *submission) *string { return &d.ConversionTo }),
	"evolucao_cpl_de":         text(func(d *submission) *string { return &d.CPLFrom }),
	"evolucao_cpl_para":       text(func(d *submission) *string { return &d.CPLTo }),
	"evolucao_fat_de":         text(func(d *submission) *string { return &d.RevenueFrom }),
	"evolucao_fat_para":       text(func(d *submission) *string { return &d.RevenueTo }),
	"resultado_surpreendente": text(func(d *submission) *string { return &d.SurprisingResult }),
	"marco_importante":        text(func(d *submission) *string { return &d.Milestone }),

	"depoimento_cliente": text(func(d *submission) *string { return &d.ClientTestimonial }),
	"momento_virada":     text(func(d *submission) *string { return &d.TurningPoint }),
	"medo_cliente":       text(func(d *submission) *string { return &d.ClientFear }),
	"superacao_medo":     text(func(d *submission) *string { return &d.FearOvercome }),

	"contexto_mercado": text(func(d *submission) *string { return &d.MarketContext }),
	"contexto_desafio": text(func(d *submission) *string { return &d.ChallengeContext }),
	"tem_anexo":        text(func(d *submission) *models.YesNo { return &d.HasAttachment }),
	"publicar_nome":    text(func(d *submission) *models.YesNo { return &d.PublishName }),
}

var monthAccessors = map[MonthField]accessor[monthRecord]{
	"mes_ano":        text(func(m *monthRecord) *string { return &m.MonthYear }),
	MonthAdSpend:     text(func(m *monthRecord) *string { return &m.AdSpend }),
	"leads":          count(func(m *monthRecord) **int { return &m.Leads }),
	"cpl":            text(func(m *monthRecord) *string { return &m.CostPerLead }),
	MonthBookings:    count(func(m *monthRecord) **int { return &m.Bookings }),
	MonthAttendances: count(func(m *monthRecord) **int { return &m.Attendances }),
	MonthClosedSales: count(func(m *monthRecord) **int { return &m.ClosedSales }),
	MonthRevenue:     text(func(m *monthRecord) *string { return &m.Revenue }),
	"acao_mes":       text(func(m *monthRecord) *string { return &m.MonthAction }),
}

// IsTagField reports whether f is a tag-set field.
func IsTagField(f Field) bool {
	a, ok := docAccessors[f]
	return ok && a.kind == kindTags
}

func coerceText(v interface{}) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case string:
		return x, nil
	default:
		return "", fmt.Errorf("%w: expected text, got %T", ErrInvalidValue, v)
	}
}

// coerceCount accepts Go integers, integral floats, json.Number and numeric
// strings. nil and "" clear the value.
func coerceCount(v interface{}) (*int, error) {
	var n int
	switch x := v.(type) {
	case nil:
		return nil, nil
	case int:
		n = x
	case int32:
		n = int(x)
	case int64:
		n = int(x)
	case float64:
		if math.Trunc(x) != x || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, x)
		}
		if x < math.MinInt || x >= math.MaxInt {
			return nil, fmt.Errorf("%w: %v is out of range", ErrInvalidValue, x)
		}
		n = int(x)
	case json.Number:
		i, err := x.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, x.String())
		}
		n = int(i)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, nil
		}
		i, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, x)
		}
		n = i
	default:
		return nil, fmt.Errorf("%w: expected integer, got %T", ErrInvalidValue, v)
	}
	return &n, nil
}

// coerceTags accepts []string or a decoded JSON array of strings. Duplicates
// are dropped keeping first occurrence order.
func coerceTags(v interface{}) ([]string, error) {
	var in []string
	switch x := v.(type) {
	case nil:
	case []string:
		in = x
	case []interface{}:
		in = make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: tag %v is not text", ErrInvalidValue, item)
			}
			in = append(in, s)
		}
	default:
		return nil, fmt.Errorf("%w: expected list of tags, got %T", ErrInvalidValue, v)
	}

	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, t := range in {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}
