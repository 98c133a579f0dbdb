package model

import (
	"time"

	"github.com/oscar503sv/gestion-de-proyectos/internal/constants"
)

type Task struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	Title       string               `gorm:"not null;size:100" json:"title"`
	Description string               `gorm:"not null;size:500" json:"description"`
	Status      constants.TaskStatus `gorm:"type:varchar(20);not null" json:"status"`
	Priority    constants.Priority   `gorm:"type:varchar(10);not null" json:"priority"`
	ProjectID   uint                 `gorm:"not null;index" json:"projectId"`
	AssignedTo  uint                 `gorm:"not null;index" json:"assignedTo"`
	CreatedAt   time.Time            `json:"createdAt"`
	DueDate     string               `gorm:"not null" json:"dueDate"`
}

func (t *Task) IsCompleted() bool {
	return t.Status == constants.StatusCompleted
}
