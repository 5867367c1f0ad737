package document

import (
	"time"

	"estagio/internal/common"
)

type Type string

const (
	TypeCurriculum           Type = "CURRICULO"
	TypeInternshipAgreement  Type = "TCE"
	TypeTerminationAgreement Type = "TRE"
	TypeActivityReport       Type = "RELATORIO"
	TypeOther                Type = "OUTRO"
)

func (t Type) Known() bool {
	switch t {
	case TypeCurriculum, TypeInternshipAgreement, TypeTerminationAgreement, TypeActivityReport, TypeOther:
		return true
	default:
		return false
	}
}

func KnownTypes() []Type {
	return []Type{TypeCurriculum, TypeInternshipAgreement, TypeTerminationAgreement, TypeActivityReport, TypeOther}
}

type Document struct {
	ID      common.UUID `json:"id"`
	OwnerID common.UUID `json:"aluno_id"`
	Type    Type        `json:"tipo"`
	// StoredName is the generated filename inside the upload store; the
	// original client filename is never used as a storage key.
	StoredName   string    `json:"path"`
	OriginalName string    `json:"nome_original"`
	UploadedAt   time.Time `json:"data_upload"`
}
