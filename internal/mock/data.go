// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package mock

import "sitecontent/internal/i18n"

// localized holds the per-language text of a base record.
type localized struct {
	title       string
	description string
}

type blogRecord struct {
	id       string
	category string
	date     string
	author   string
	email    string
	tags     []string
	featured bool
	langs    []i18n.Language // nil means every supported language
	text     map[i18n.Language]localized
}

type projectRecord struct {
	id           string
	category     string
	date         string
	technologies []string
	team         []string
	references   []string
	featured     bool
	langs        []i18n.Language
	text         map[i18n.Language]localized
}

var (
	en = i18n.English
	es = i18n.Spanish
	pt = i18n.Portuguese
)

// categoryNames translates category keys.
var categoryNames = map[string]map[i18n.Language]string{
	"engineering": {en: "Engineering", es: "Ingeniería", pt: "Engenharia"},
	"design":      {en: "Design", es: "Diseño", pt: "Design"},
	"company":     {en: "Company", es: "Empresa", pt: "Empresa"},
	"product":     {en: "Product", es: "Producto", pt: "Produto"},
	"web":         {en: "Web", es: "Web", pt: "Web"},
	"mobile":      {en: "Mobile", es: "Móvil", pt: "Mobile"},
	"data":        {en: "Data", es: "Datos", pt: "Dados"},
	"platform":    {en: "Platform", es: "Plataforma", pt: "Plataforma"},
}

// bodyTemplates receive title, description, and category name in order.
var bodyTemplates = map[i18n.Language]string{
	en: "## %s\n\n%s\n\nThis entry belongs to our **%s** collection. It walks through the context, the decisions we made, and what we would do differently next time.\n\n- Context\n- Approach\n- Results\n",
	es: "## %s\n\n%s\n\nEsta entrada pertenece a nuestra colección de **%s**. Repasa el contexto, las decisiones que tomamos y lo que haríamos distinto la próxima vez.\n\n- Contexto\n- Enfoque\n- Resultados\n",
	pt: "## %s\n\n%s\n\nEsta publicação faz parte da nossa coleção de **%s**. Ela percorre o contexto, as decisões que tomamos e o que faríamos diferente da próxima vez.\n\n- Contexto\n- Abordagem\n- Resultados\n",
}

var blogRecords = []blogRecord{
	{id: "1", category: "engineering", date: "2024-01-08", author: "Ana Ribeiro", email: "ana@example.com", tags: []string{"go", "performance"}, featured: true,
		text: map[i18n.Language]localized{
			en: {"Shaving seconds off our build pipeline", "How caching and parallel stages cut CI time in half."},
			es: {"Recortando segundos de nuestro pipeline", "Cómo la caché y las etapas paralelas redujeron el tiempo de CI a la mitad."},
			pt: {"Cortando segundos do nosso pipeline", "Como cache e etapas paralelas reduziram o tempo de CI pela metade."},
		}},
	{id: "2", category: "design", date: "2024-01-22", author: "Lucas Méndez", email: "lucas@example.com", tags: []string{"ux", "accessibility"},
		text: map[i18n.Language]localized{
			en: {"Designing for every screen reader", "Lessons from auditing our components for accessibility."},
			es: {"Diseñar para cualquier lector de pantalla", "Lecciones de auditar nuestros componentes para accesibilidad."},
			pt: {"Projetando para todo leitor de tela", "Lições de auditar nossos componentes para acessibilidade."},
		}},
	{id: "3", category: "company", date: "2024-02-05", author: "Marta Sousa", email: "marta@example.com", tags: []string{"culture"},
		text: map[i18n.Language]localized{
			en: {"Our first remote offsite", "What a week together taught a distributed team."},
			es: {"Nuestro primer encuentro remoto", "Lo que una semana juntos enseñó a un equipo distribuido."},
			pt: {"Nosso primeiro encontro remoto", "O que uma semana juntos ensinou a uma equipe distribuída."},
		}},
	{id: "4", category: "product", date: "2024-02-19", author: "Diego Fernández", email: "diego@example.com", tags: []string{"roadmap"},
		text: map[i18n.Language]localized{
			en: {"How we plan a quarter", "From customer interviews to a roadmap everyone can read."},
			es: {"Cómo planificamos un trimestre", "De entrevistas con clientes a una hoja de ruta legible para todos."},
			pt: {"Como planejamos um trimestre", "De entrevistas com clientes a um roadmap que todos entendem."},
		}},
	{id: "5", category: "engineering", date: "2024-03-04", author: "Ana Ribeiro", email: "ana@example.com", tags: []string{"postgres", "databases"}, featured: true,
		text: map[i18n.Language]localized{
			en: {"Postgres indexes we regret", "A tour of indexes that cost more than they saved."},
			es: {"Índices de Postgres que lamentamos", "Un recorrido por índices que costaron más de lo que ahorraron."},
			pt: {"Índices do Postgres dos quais nos arrependemos", "Um tour por índices que custaram mais do que economizaram."},
		}},
	{id: "6", category: "design", date: "2024-03-18", author: "Sofía Castro", email: "sofia@example.com", tags: []string{"branding"},
		text: map[i18n.Language]localized{
			en: {"Refreshing a brand without losing it", "Keeping recognition while modernizing a visual identity."},
			es: {"Renovar una marca sin perderla", "Mantener el reconocimiento mientras se moderniza una identidad visual."},
			pt: {"Renovando uma marca sem perdê-la", "Manter o reconhecimento enquanto se moderniza uma identidade visual."},
		}},
	{id: "7", category: "engineering", date: "2024-04-01", author: "Pedro Alves", email: "pedro@example.com", tags: []string{"observability"},
		text: map[i18n.Language]localized{
			en: {"Logs, metrics, and the traces in between", "Choosing the right signal for each production question."},
			es: {"Logs, métricas y las trazas intermedias", "Elegir la señal adecuada para cada pregunta de producción."},
			pt: {"Logs, métricas e os traces no meio", "Escolhendo o sinal certo para cada pergunta de produção."},
		}},
	{id: "8", category: "product", date: "2024-04-15", author: "Diego Fernández", email: "diego@example.com", tags: []string{"pricing"},
		text: map[i18n.Language]localized{
			en: {"Pricing pages that answer questions", "Rewriting our pricing page around what buyers ask."},
			es: {"Páginas de precios que responden preguntas", "Reescribir nuestra página de precios según lo que preguntan los compradores."},
			pt: {"Páginas de preços que respondem perguntas", "Reescrevendo nossa página de preços com base no que os compradores perguntam."},
		}},
	{id: "9", category: "company", date: "2024-04-29", author: "Marta Sousa", email: "marta@example.com", tags: []string{"hiring"},
		text: map[i18n.Language]localized{
			en: {"Hiring our first designers", "What we looked for and how we ran the process."},
			es: {"Contratando a nuestros primeros diseñadores", "Qué buscamos y cómo llevamos el proceso."},
			pt: {"Contratando nossos primeiros designers", "O que procuramos e como conduzimos o processo."},
		}},
	{id: "10", category: "engineering", date: "2024-05-13", author: "Pedro Alves", email: "pedro@example.com", tags: []string{"testing"},
		text: map[i18n.Language]localized{
			en: {"Tests that survive refactors", "Writing tests against behavior instead of structure."},
			es: {"Pruebas que sobreviven a los refactors", "Escribir pruebas sobre el comportamiento y no sobre la estructura."},
			pt: {"Testes que sobrevivem a refatorações", "Escrevendo testes sobre comportamento em vez de estrutura."},
		}},
	{id: "11", category: "design", date: "2024-05-27", author: "Lucas Méndez", email: "lucas@example.com", tags: []string{"design-systems"}, featured: true,
		text: map[i18n.Language]localized{
			en: {"A design system nobody has to police", "Tokens, docs, and defaults that make the right thing easy."},
			es: {"Un sistema de diseño que nadie tiene que vigilar", "Tokens, documentación y valores por defecto que facilitan lo correcto."},
			pt: {"Um design system que ninguém precisa policiar", "Tokens, documentação e padrões que tornam o certo fácil."},
		}},
	{id: "12", category: "product", date: "2024-06-10", author: "Sofía Castro", email: "sofia@example.com", tags: []string{"research"},
		text: map[i18n.Language]localized{
			en: {"Five interviews a week", "Keeping a steady research habit on a small team."},
			es: {"Cinco entrevistas por semana", "Mantener un hábito de investigación constante en un equipo pequeño."},
			pt: {"Cinco entrevistas por semana", "Mantendo um hábito constante de pesquisa em uma equipe pequena."},
		}},
	{id: "13", category: "engineering", date: "2024-06-24", author: "Ana Ribeiro", email: "ana@example.com", tags: []string{"security"},
		text: map[i18n.Language]localized{
			en: {"Rotating secrets without downtime", "A runbook for credentials that change under load."},
			es: {"Rotar secretos sin caídas", "Un manual para credenciales que cambian bajo carga."},
			pt: {"Rotacionando segredos sem indisponibilidade", "Um runbook para credenciais que mudam sob carga."},
		}},
	{id: "14", category: "company", date: "2024-07-08", author: "Marta Sousa", email: "marta@example.com", tags: []string{"open-source"},
		text: map[i18n.Language]localized{
			en: {"Why we open-sourced our tooling", "Giving back the small tools that run our studio."},
			es: {"Por qué liberamos nuestras herramientas", "Devolver las pequeñas herramientas que mueven nuestro estudio."},
			pt: {"Por que abrimos o código das nossas ferramentas", "Devolvendo as pequenas ferramentas que movem nosso estúdio."},
		}},
	{id: "15", category: "engineering", date: "2024-07-22", author: "Pedro Alves", email: "pedro@example.com", tags: []string{"i18n"},
		text: map[i18n.Language]localized{
			en: {"Shipping a site in three languages", "Fallbacks, translation tables, and other surprises."},
			es: {"Publicar un sitio en tres idiomas", "Respaldos, tablas de traducción y otras sorpresas."},
			pt: {"Publicando um site em três idiomas", "Fallbacks, tabelas de tradução e outras surpresas."},
		}},
	{id: "16", category: "design", date: "2024-08-05", author: "Sofía Castro", email: "sofia@example.com", tags: []string{"motion"},
		text: map[i18n.Language]localized{
			en: {"Motion with a purpose", "Animations that explain instead of decorate."},
			es: {"Movimiento con propósito", "Animaciones que explican en lugar de decorar."},
			pt: {"Movimento com propósito", "Animações que explicam em vez de decorar."},
		}},
	{id: "17", category: "product", date: "2024-08-19", author: "Diego Fernández", email: "diego@example.com", tags: []string{"analytics"},
		text: map[i18n.Language]localized{
			en: {"Metrics we stopped tracking", "Dropping vanity numbers to focus on a few that matter."},
			es: {"Métricas que dejamos de seguir", "Abandonar números de vanidad para centrarnos en pocos que importan."},
			pt: {"Métricas que deixamos de acompanhar", "Abandonando números de vaidade para focar em poucos que importam."},
		}},
	{id: "18", category: "company", date: "2024-09-02", author: "Marta Sousa", email: "marta@example.com", tags: []string{"announcements"},
		langs: []i18n.Language{en},
		text: map[i18n.Language]localized{
			en: {"We are hiring in Lisbon", "Join the team opening our new office."},
		}},
}

var projectRecords = []projectRecord{
	{id: "1", category: "web", date: "2023-02-01", technologies: []string{"Go", "PostgreSQL", "React"}, team: []string{"Ana Ribeiro", "Lucas Méndez"}, references: []string{"https://example.com/atlas"}, featured: true,
		text: map[i18n.Language]localized{
			en: {"Atlas booking platform", "Multi-tenant booking for a chain of co-working spaces."},
			es: {"Plataforma de reservas Atlas", "Reservas multi-tenant para una cadena de espacios de coworking."},
			pt: {"Plataforma de reservas Atlas", "Reservas multi-tenant para uma rede de espaços de coworking."},
		}},
	{id: "2", category: "mobile", date: "2023-04-15", technologies: []string{"Kotlin", "Swift"}, team: []string{"Pedro Alves"}, references: []string{"https://example.com/harbor"},
		langs: []i18n.Language{en, es},
		text: map[i18n.Language]localized{
			en: {"Harbor field app", "Offline-first inspections for port operators."},
			es: {"App de campo Harbor", "Inspecciones offline para operadores portuarios."},
		}},
	{id: "3", category: "data", date: "2023-06-10", technologies: []string{"Python", "BigQuery"}, team: []string{"Diego Fernández", "Marta Sousa"},
		text: map[i18n.Language]localized{
			en: {"Ledger analytics", "Daily revenue dashboards for a fintech client."},
			es: {"Analítica Ledger", "Paneles diarios de ingresos para un cliente fintech."},
			pt: {"Analytics Ledger", "Painéis diários de receita para um cliente fintech."},
		}},
	{id: "4", category: "platform", date: "2023-08-21", technologies: []string{"Go", "Kubernetes"}, team: []string{"Ana Ribeiro", "Pedro Alves"}, featured: true,
		text: map[i18n.Language]localized{
			en: {"Beacon deploy platform", "Self-service deployments for forty product teams."},
			es: {"Plataforma de despliegue Beacon", "Despliegues autoservicio para cuarenta equipos de producto."},
			pt: {"Plataforma de deploy Beacon", "Deploys self-service para quarenta times de produto."},
		}},
	{id: "5", category: "web", date: "2023-10-02", technologies: []string{"TypeScript", "Next.js"}, team: []string{"Sofía Castro"},
		text: map[i18n.Language]localized{
			en: {"Civic open data portal", "Publishing city datasets with a friendly explorer."},
			es: {"Portal de datos abiertos Civic", "Publicación de datos de la ciudad con un explorador amigable."},
			pt: {"Portal de dados abertos Civic", "Publicando dados da cidade com um explorador amigável."},
		}},
	{id: "6", category: "mobile", date: "2023-11-20", technologies: []string{"Flutter"}, team: []string{"Lucas Méndez", "Sofía Castro"},
		text: map[i18n.Language]localized{
			en: {"Pulse fitness coach", "A training companion that adapts to sleep and stress."},
			es: {"Entrenador Pulse", "Un compañero de entrenamiento que se adapta al sueño y al estrés."},
			pt: {"Treinador Pulse", "Um parceiro de treino que se adapta ao sono e ao estresse."},
		}},
	{id: "7", category: "data", date: "2024-01-15", technologies: []string{"Go", "Kafka", "ClickHouse"}, team: []string{"Pedro Alves", "Diego Fernández"},
		text: map[i18n.Language]localized{
			en: {"Stream telemetry pipeline", "Ingesting two billion sensor events a day."},
			es: {"Pipeline de telemetría Stream", "Ingesta de dos mil millones de eventos de sensores al día."},
			pt: {"Pipeline de telemetria Stream", "Ingestão de dois bilhões de eventos de sensores por dia."},
		}},
	{id: "8", category: "platform", date: "2024-02-28", technologies: []string{"Terraform", "AWS"}, team: []string{"Ana Ribeiro"},
		text: map[i18n.Language]localized{
			en: {"Keystone landing zone", "A compliant cloud foundation for a healthcare group."},
			es: {"Landing zone Keystone", "Una base en la nube conforme para un grupo sanitario."},
			pt: {"Landing zone Keystone", "Uma fundação em nuvem em conformidade para um grupo de saúde."},
		}},
	{id: "9", category: "web", date: "2024-04-09", technologies: []string{"Go", "htmx"}, team: []string{"Lucas Méndez"}, featured: true,
		text: map[i18n.Language]localized{
			en: {"Orchard marketplace", "A local produce marketplace with same-day delivery."},
			es: {"Mercado Orchard", "Un mercado de productos locales con entrega en el día."},
			pt: {"Mercado Orchard", "Um marketplace de produtos locais com entrega no mesmo dia."},
		}},
	{id: "10", category: "data", date: "2024-06-03", technologies: []string{"dbt", "Snowflake"}, team: []string{"Marta Sousa"},
		text: map[i18n.Language]localized{
			en: {"Prism customer 360", "Unifying support, billing, and product signals."},
			es: {"Prism cliente 360", "Unificando señales de soporte, facturación y producto."},
			pt: {"Prism cliente 360", "Unificando sinais de suporte, cobrança e produto."},
		}},
	{id: "11", category: "mobile", date: "2024-07-30", technologies: []string{"React Native"}, team: []string{"Sofía Castro", "Pedro Alves"},
		text: map[i18n.Language]localized{
			en: {"Transit rider app", "Real-time arrivals and tickets for a regional network."},
			es: {"App de viajeros Transit", "Llegadas en tiempo real y billetes para una red regional."},
			pt: {"App de passageiros Transit", "Chegadas em tempo real e bilhetes para uma rede regional."},
		}},
	{id: "12", category: "platform", date: "2024-09-16", technologies: []string{"Go", "gRPC"}, team: []string{"Diego Fernández", "Ana Ribeiro"},
		text: map[i18n.Language]localized{
			en: {"Relay messaging gateway", "One API in front of SMS, email, and push providers."},
			es: {"Pasarela de mensajería Relay", "Una API delante de proveedores de SMS, email y push."},
			pt: {"Gateway de mensagens Relay", "Uma API na frente de provedores de SMS, email e push."},
		}},
}
