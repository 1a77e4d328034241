// Package catalog serves prompt templates from the MySQL prompt catalog.
package catalog

import (
	"VaultMind/backend/go/internal/analysis/interfaces"
	"VaultMind/backend/go/internal/analysis/schema"
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// promptTemplateRecord is the GORM model for the prompt_templates table.
// Variables and OutputKeys are stored as comma separated lists.
type promptTemplateRecord struct {
	ID         string `gorm:"primaryKey;size:64"`
	Category   string `gorm:"size:128;index"`
	Kind       string `gorm:"size:32"`
	Position   int
	Template   string `gorm:"type:text"`
	Variables  string `gorm:"type:text"`
	OutputKeys string `gorm:"type:text"`
}

// TableName sets the table name for the promptTemplateRecord model.
func (promptTemplateRecord) TableName() string {
	return "prompt_templates"
}

// MySQLCatalog reads prompt templates from MySQL through GORM.
type MySQLCatalog struct {
	db *gorm.DB
}

// NewMySQLCatalog creates a catalog over an established GORM connection.
func NewMySQLCatalog(db *gorm.DB) (*MySQLCatalog, error) {
	if db == nil {
		return nil, fmt.Errorf("mysql connection is not initialized")
	}
	return &MySQLCatalog{db: db}, nil
}

// Templates returns the templates of the given category and kind ordered by
// their catalog position.
func (c *MySQLCatalog) Templates(ctx context.Context, category string, kind schema.PromptKind) ([]*schema.PromptTemplate, error) {
	var records []promptTemplateRecord
	err := c.db.WithContext(ctx).
		Where("category = ? AND kind = ?", category, string(kind)).
		Order("position ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load prompt templates for category %s: %w", category, err)
	}

	templates := make([]*schema.PromptTemplate, 0, len(records))
	for _, r := range records {
		templates = append(templates, &schema.PromptTemplate{
			ID:         r.ID,
			Category:   r.Category,
			Kind:       schema.PromptKind(r.Kind),
			Position:   r.Position,
			Text:       r.Template,
			Variables:  splitCSV(r.Variables),
			OutputKeys: splitCSV(r.OutputKeys),
		})
	}
	return templates, nil
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// compile-time check to ensure MySQLCatalog implements the PromptCatalog interface
var _ interfaces.PromptCatalog = (*MySQLCatalog)(nil)
