package models

// ClinicType is the kind of clinic the case study is about.
type ClinicType string

const (
	ClinicGeneral       ClinicType = "geral"
	ClinicOrthodontics  ClinicType = "ortodontia"
	ClinicImplantology  ClinicType = "implantodontia"
	ClinicPediatric     ClinicType = "odontopediatria"
	ClinicFacialHarmony ClinicType = "hof"
	ClinicFranchise     ClinicType = "franquia"
	ClinicOther         ClinicType = "outro"
)

// ClientProfile describes the size/maturity of the client.
type ClientProfile string

const (
	ProfileSmall            ClientProfile = "pequena"
	ProfileMedium           ClientProfile = "media"
	ProfileLarge            ClientProfile = "grande"
	ProfileReference        ClientProfile = "referencia"
	ProfileLeavingFranchise ClientProfile = "saindo_franquia"
)

// AcquisitionChannel is how the client reached the agency.
type AcquisitionChannel string

const (
	ChannelReferral AcquisitionChannel = "indicacao"
	ChannelAd       AcquisitionChannel = "anuncio"
	ChannelSocial   AcquisitionChannel = "redes_sociais"
	ChannelGoogle   AcquisitionChannel = "google"
	ChannelEvent    AcquisitionChannel = "evento"
	ChannelOther    AcquisitionChannel = "outro"
)

// PriorMarketing is the client's marketing experience before the partnership.
type PriorMarketing string

const (
	PriorOtherAgency PriorMarketing = "outra_agencia"
	PriorInHouse     PriorMarketing = "interno"
	PriorFirstTime   PriorMarketing = "primeira_vez"
)

// YesNo is an optional binary choice.
type YesNo string

const (
	Yes YesNo = "sim"
	No  YesNo = "nao"
)

// MonthRecord holds the performance figures of one month of the partnership.
// Counts are pointers so that an unfilled value is distinguishable from zero.
type MonthRecord struct {
	MonthYear   string `json:"mes_ano" validate:"required"`
	AdSpend     string `json:"investimento" validate:"required"`
	Leads       *int   `json:"leads" validate:"required,gte=0"`
	CostPerLead string `json:"cpl" validate:"required"`
	Bookings    *int   `json:"agendamentos" validate:"required,gte=0"`
	Attendances *int   `json:"comparecimentos" validate:"required,gte=0"`
	ClosedSales *int   `json:"fechamentos" validate:"required,gte=0"`
	Revenue     string `json:"faturamento_mes" validate:"required"`
	MonthAction string `json:"acao_mes"`
}

// CaseSubmission is the full case-study document sent to the form sink.
// Field order is the order in which validation reports failures.
type CaseSubmission struct {
	// Identification
	ClinicName        string        `json:"nome_clinica" validate:"required"`
	CityState         string        `json:"cidade_estado" validate:"required"`
	ClinicType        ClinicType    `json:"tipo_clinica" validate:"required,choice=tipo_clinica"`
	ClinicTypeOther   string        `json:"tipo_clinica_outro"`
	ClientProfile     ClientProfile `json:"perfil_cliente" validate:"required,choice=perfil_cliente"`
	PartnershipMonths *int          `json:"tempo_parceria" validate:"required,gte=1"`

	// Prior state
	PainPoints         []string           `json:"dor" validate:"min=1"`
	PainPointsOther    string             `json:"dor_outro"`
	RevenueBefore      string             `json:"faturamento_antes" validate:"required"`
	AcquisitionChannel AcquisitionChannel `json:"origem_cliente" validate:"required,choice=origem_cliente"`
	AcquisitionOther   string             `json:"origem_cliente_outro"`
	PriorMarketing     PriorMarketing     `json:"mkt_anterior" validate:"required,choice=mkt_anterior"`

	// Performance window
	StartDate      string        `json:"data_inicio" validate:"required"`
	EndDate        string        `json:"data_fim" validate:"required"`
	MonthsAnalyzed *int          `json:"meses_analisados" validate:"required,gte=1"`
	Months         []MonthRecord `json:"meses" validate:"min=1,dive"`

	// Strategy
	StrategyContent       []string `json:"estrategia_c"`
	StrategyContentOther  string   `json:"estrategia_c_outro"`
	StrategyHumanize      []string `json:"estrategia_h"`
	StrategyHumanizeOther string   `json:"estrategia_h_outro"`
	StrategyAds           []string `json:"estrategia_a"`
	StrategyAdsOther      string   `json:"estrategia_a_outro"`
	StrategySales         []string `json:"estrategia_v"`
	StrategySalesOther    string   `json:"estrategia_v_outro"`
	StrategyIntel         []string `json:"estrategia_i"`
	StrategyIntelOther    string   `json:"estrategia_i_outro"`

	// Outcome summary
	TotalAdSpend     string `json:"resumo_investimento" validate:"required"`
	TotalRevenue     string `json:"resumo_faturamento" validate:"required"`
	NetProfit        string `json:"resumo_lucro" validate:"required"`
	AverageROI       string `json:"resumo_roi" validate:"required"`
	TicketFrom       string `json:"evolucao_tm_de"`
	TicketTo         string `json:"evolucao_tm_para"`
	ConversionFrom   string `json:"evolucao_tc_de"`
	ConversionTo     string `json:"evolucao_tc_para"`
	CPLFrom          string `json:"evolucao_cpl_de"`
	CPLTo            string `json:"evolucao_cpl_para"`
	RevenueFrom      string `json:"evolucao_fat_de"`
	RevenueTo        string `json:"evolucao_fat_para"`
	SurprisingResult string `json:"resultado_surpreendente"`
	Milestone        string `json:"marco_importante"`

	// Testimonial
	ClientTestimonial string `json:"depoimento_cliente"`
	TurningPoint      string `json:"momento_virada"`
	ClientFear        string `json:"medo_cliente"`
	FearOvercome      string `json:"superacao_medo"`

	// Additional context
	MarketContext    string `json:"contexto_mercado"`
	ChallengeContext string `json:"contexto_desafio"`
	HasAttachment    YesNo  `json:"tem_anexo" validate:"omitempty,choice=sim_nao"`
	PublishName      YesNo  `json:"publicar_nome" validate:"omitempty,choice=sim_nao"`
}

// NewCaseSubmission returns an empty document with the given number of blank
// monthly records. Tag sets are initialized so they serialize as empty arrays.
func NewCaseSubmission(months int) CaseSubmission {
	doc := CaseSubmission{
		PainPoints:       []string{},
		StrategyContent:  []string{},
		StrategyHumanize: []string{},
		StrategyAds:      []string{},
		StrategySales:    []string{},
		StrategyIntel:    []string{},
	}
	if months > 0 {
		doc.Months = make([]MonthRecord, months)
	} else {
		doc.Months = []MonthRecord{}
	}
	return doc
}

// Clone returns a deep copy of the document.
func (c CaseSubmission) Clone() CaseSubmission {
	out := c
	out.PartnershipMonths = cloneInt(c.PartnershipMonths)
	out.MonthsAnalyzed = cloneInt(c.MonthsAnalyzed)
	out.PainPoints = cloneTags(c.PainPoints)
	out.StrategyContent = cloneTags(c.StrategyContent)
	out.StrategyHumanize = cloneTags(c.StrategyHumanize)
	out.StrategyAds = cloneTags(c.StrategyAds)
	out.StrategySales = cloneTags(c.StrategySales)
	out.StrategyIntel = cloneTags(c.StrategyIntel)

	if c.Months != nil {
		out.Months = make([]MonthRecord, len(c.Months))
		for i, m := range c.Months {
			out.Months[i] = m.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the record.
func (m MonthRecord) Clone() MonthRecord {
	out := m
	out.Leads = cloneInt(m.Leads)
	out.Bookings = cloneInt(m.Bookings)
	out.Attendances = cloneInt(m.Attendances)
	out.ClosedSales = cloneInt(m.ClosedSales)
	return out
}

// IntValue dereferences an optional count, reading nil as zero.
func IntValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

func cloneInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, len(tags))
	copy(out, tags)
	return out
}
