package posting

import (
	"time"

	"estagio/internal/common"
)

type Posting struct {
	ID             common.UUID `json:"id"`
	Title          string      `json:"titulo"`
	Description    string      `json:"descricao"`
	Company        string      `json:"empresa"`
	Location       string      `json:"local"`
	Stipend        string      `json:"bolsa,omitempty"`
	WeeklyHours    int         `json:"carga_horaria,omitempty"`
	Requirements   string      `json:"requisitos,omitempty"`
	Benefits       string      `json:"beneficios,omitempty"`
	OpensAt        time.Time   `json:"data_abertura"`
	ClosesAt       time.Time   `json:"data_encerramento"`
	Active         bool        `json:"ativa"`
	RequiredCourse string      `json:"curso_requerido,omitempty"`
	MinTerm        int         `json:"periodo_minimo,omitempty"`
	Shift          string      `json:"turno,omitempty"`
	ImageURL       string      `json:"imagem,omitempty"`
	NoticeURL      string      `json:"link_edital,omitempty"`
	CreatedBy      common.UUID `json:"criado_por_id"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// OpenAt reports whether the posting accepts applications at the given
// instant: it must be active and the instant must fall inside
// [opening 00:00:00, closing 23:59:59.999] UTC.
func (p *Posting) OpenAt(now time.Time) bool {
	if !p.Active {
		return false
	}
	opens := startOfDay(p.OpensAt)
	closes := endOfDay(p.ClosesAt)
	return !now.Before(opens) && !now.After(closes)
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999_000_000, time.UTC)
}

// Summary is the feed/management projection.
type Summary struct {
	ID       common.UUID `json:"id"`
	Title    string      `json:"titulo"`
	Company  string      `json:"empresa"`
	Location string      `json:"local"`
	Stipend  string      `json:"bolsa,omitempty"`
	OpensAt  time.Time   `json:"data_abertura"`
	ClosesAt time.Time   `json:"data_encerramento"`
	Active   bool        `json:"ativa"`
	ImageURL string      `json:"imagem,omitempty"`
}

// Detail is a posting joined with its creator for the detail page.
type Detail struct {
	Posting
	CreatorName  string `json:"criado_por_nome,omitempty"`
	CreatorEmail string `json:"criado_por_email,omitempty"`
}
