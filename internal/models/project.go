package model

import (
	"strings"
	"time"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
)

type Project struct {
	ID          uint                    `gorm:"primaryKey" json:"id"`
	Name        string                  `gorm:"not null;size:100" json:"name"`
	Description string                  `gorm:"not null;size:500" json:"description"`
	Status      constants.ProjectStatus `gorm:"type:varchar(20);not null" json:"status"`
	Deadline    string                  `gorm:"not null" json:"deadline"`
	CreatedBy   uint                    `gorm:"not null;index" json:"createdBy"`
	CreatedAt   time.Time               `json:"createdAt"`
}

// HasName reports whether name matches case-insensitively, ignoring surrounding blanks.
func (p *Project) HasName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(p.Name), strings.TrimSpace(name))
}
