// pkg/catalog/default.go
package catalog

// Version of the built-in catalogue.
const Version = "1.0.0"

// Default returns the built-in option catalogue of the case form.
func Default() *Catalog {
	return &Catalog{
		Version: Version,
		Questions: []Question{
			{
				ID:         "tipo_clinica",
				Section:    "identificacao",
				Title:      "Tipo de clínica",
				Kind:       KindSingle,
				OtherField: "tipo_clinica_outro",
				Options: []Option{
					{Value: "geral", Label: "Clínica Odontológica Geral"},
					{Value: "ortodontia", Label: "Ortodontia Especializada"},
					{Value: "implantodontia", Label: "Implantodontia"},
					{Value: "odontopediatria", Label: "Odontopediatria"},
					{Value: "hof", Label: "Harmonização Facial"},
					{Value: "franquia", Label: "Franquia Odontológica"},
					{Value: OtherValue, Label: "Outro"},
				},
			},
			{
				ID:      "perfil_cliente",
				Section: "identificacao",
				Title:   "Perfil do cliente",
				Kind:    KindSingle,
				Options: []Option{
					{Value: "pequena", Label: "Clínica pequena/em crescimento (1-3 cadeiras)"},
					{Value: "media", Label: "Clínica média estabelecida (4-8 cadeiras)"},
					{Value: "grande", Label: "Clínica grande/múltiplas unidades (9+ cadeiras)"},
					{Value: "referencia", Label: "Profissional referência/autoridade local"},
					{Value: "saindo_franquia", Label: "Saindo de franquia/mudança de bandeira"},
				},
			},
			{
				ID:         "dor",
				Section:    "cenario_antes",
				Title:      "Principal dor/desafio",
				Kind:       KindMulti,
				OtherField: "dor_outro",
				Options: []Option{
					{Value: "agenda_vaga", Label: "Agenda com horários vagos"},
					{Value: "faturamento_instavel", Label: "Faturamento instável/imprevisível"},
					{Value: "leads_desqualificados", Label: "Leads desqualificados"},
					{Value: "conversao_baixa", Label: "Taxa de conversão baixa"},
					{Value: "cac_alto", Label: "CAC muito alto"},
					{Value: "equipe_despreparada", Label: "Equipe comercial despreparada"},
					{Value: "sem_retorno", Label: "Marketing sem retorno claro"},
					{Value: "dependencia_indicacoes", Label: "Dependência de indicações"},
					{Value: "medo_expandir", Label: "Queria expandir mas tinha medo"},
					{Value: "perdeu_fluxo_franquia", Label: "Saiu de franquia e perdeu fluxo"},
					{Value: OtherValue, Label: "Outro"},
				},
			},
			{
				ID:         "origem_cliente",
				Section:    "cenario_antes",
				Title:      "Como o cliente chegou",
				Kind:       KindSingle,
				OtherField: "origem_cliente_outro",
				Options: []Option{
					{Value: "indicacao", Label: "Indicação"},
					{Value: "anuncio", Label: "Anúncio"},
					{Value: "redes_sociais", Label: "Redes sociais"},
					{Value: "google", Label: "Google"},
					{Value: "evento", Label: "Evento/Palestra"},
					{Value: OtherValue, Label: "Outro"},
				},
			},
			{
				ID:      "mkt_anterior",
				Section: "cenario_antes",
				Title:   "Já tinha feito marketing antes",
				Kind:    KindSingle,
				Options: []Option{
					{Value: "outra_agencia", Label: "Sim, com outra agência (resultados ruins)"},
					{Value: "interno", Label: "Sim, internamente (não deu certo)"},
					{Value: "primeira_vez", Label: "Não, primeira vez"},
				},
			},
			{
				ID:         "estrategia_c",
				Section:    "estrategia",
				Title:      "C - Campanha",
				Kind:       KindMulti,
				OtherField: "estrategia_c_outro",
				Options: []Option{
					{Value: "pesquisa_mercado", Label: "Pesquisa de mercado local"},
					{Value: "definicao_publico", Label: "Definição de público-alvo específico"},
					{Value: "mapa_mental", Label: "Mapa mental estratégico"},
					{Value: "criativos", Label: "Criativos especializados"},
					{Value: OtherValue, Label: "Outro"},
				},
			},
			{
				ID:         "estrategia_h",
				Section:    "estrategia",
				Title:      "H - Humanização",
				Kind:       KindMulti,
				OtherField: "estrategia_h_outro",
				Options: []Option{
					{Value: "curadoria_videos", Label: "Curadoria de vídeos"},
					{Value: "roteiros", Label: "Roteiros personalizados"},
					{Value: "gravacao_dentistas", Label: "Gravação com dentistas"},
					{Value: "depoimentos", Label: "Depoimentos de pacientes"},
					{Value: OtherValue, Label: "Outro"},
				},
			},
			{
				ID:         "estrategia_a",
				Section:    "estrategia",
				Title:      "A - Anúncios pagos",
				Kind:       KindMulti,
				OtherField: "estrategia_a_outro",
				Options: []Option{
					{Value: "meta_ads", Label: "Meta Ads (Facebook/Instagram)"},
					{Value: "google_ads", Label: "Google Ads"},
					{Value: "youtube_ads", Label: "YouTube Ads"},
					{Value: "tiktok_ads", Label: "TikTok Ads"},
					{Value: OtherValue, Label: "Outro"},
				},
			},
			{
				ID:         "estrategia_v",
				Section:    "estrategia",
				Title:      "V - Vendas e monitoramento",
				Kind:       KindMulti,
				OtherField: "estrategia_v_outro",
				Options: []Option{
					{Value: "funil_comercial", Label: "Estruturação do funil comercial"},
					{Value: "crm", Label: "Integração com CRM (RD Station)"},
					{Value: "treinamento_vendas", Label: "Treinamento da equipe de vendas"},
					{Value: "acompanhamento_semanal", Label: "Acompanhamento semanal"},
					{Value: OtherValue, Label: "Outro"},
				},
			},
			{
				ID:         "estrategia_i",
				Section:    "estrategia",
				Title:      "I - Inteligência de dados",
				Kind:       KindMulti,
				OtherField: "estrategia_i_outro",
				Options: []Option{
					{Value: "bi", Label: "BI personalizado"},
					{Value: "relatorios_semanais", Label: "Relatórios semanais"},
					{Value: "otimizacoes_dados", Label: "Otimizações baseadas em dados"},
					{Value: "analise_metricas", Label: "Análise de métricas em tempo real"},
					{Value: OtherValue, Label: "Outro"},
				},
			},
			{
				ID:      "sim_nao",
				Section: "contexto",
				Title:   "Sim ou não",
				Kind:    KindSingle,
				Options: []Option{
					{Value: "sim", Label: "Sim"},
					{Value: "nao", Label: "Não"},
				},
			},
		},
	}
}
