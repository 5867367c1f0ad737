package application

import (
	"strings"
	"time"

	"estagio/internal/common"
)

type Status string

const (
	StatusPending  Status = "PENDENTE"
	StatusApproved Status = "APROVADO"
	StatusRejected Status = "REPROVADO"
)

func NormalizeStatus(value string) Status {
	return Status(strings.ToUpper(strings.TrimSpace(value)))
}

// Known reports membership in the status enum.
func (s Status) Known() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) Final() bool {
	return s == StatusApproved || s == StatusRejected
}

type Application struct {
	ID        common.UUID `json:"id"`
	StudentID common.UUID `json:"aluno_id"`
	PostingID common.UUID `json:"vaga_id"`
	Status    Status      `json:"status"`
	CreatedAt time.Time   `json:"data_candidatura"`
}

// PostingSummary is the slice of posting data the student views carry.
type PostingSummary struct {
	ID       common.UUID `json:"id"`
	Title    string      `json:"titulo"`
	Company  string      `json:"empresa"`
	Location string      `json:"local,omitempty"`
	ClosesAt time.Time   `json:"data_encerramento"`
}

// StudentSummary is the applicant projection shown to technicians.
type StudentSummary struct {
	ID       common.UUID `json:"id"`
	FullName string      `json:"nome_completo"`
	Email    string      `json:"email,omitempty"`
	Course   string      `json:"curso,omitempty"`
	Term     int         `json:"periodo,omitempty"`
}

// StudentView is an application joined with its posting, as listed by the
// owning student.
type StudentView struct {
	Application
	Posting PostingSummary `json:"vaga"`
}

// Applicant is an application joined with its student, as listed per posting
// for technicians.
type Applicant struct {
	Application
	Student StudentSummary `json:"aluno"`
}

// Detail carries both summaries; returned from apply and status changes.
type Detail struct {
	Application
	Posting PostingSummary `json:"vaga"`
	Student StudentSummary `json:"aluno"`
}
