package repository

import "github.com/jhoicas/Licencias-api/internal/domain/entity"

// SettingsRepository define el puerto de persistencia para ImportSettings y
// sus tablas hijas (historial y resultados).
type SettingsRepository interface {
	// GetByID devuelve la configuración con su tabla de descuentos cargada.
	GetByID(id string) (*entity.ImportSettings, error)
	AddHistory(entry *entity.ImportHistoryEntry) error
	AddResult(entry *entity.ImportResultEntry) error
	GetResult(settingsID, resultID string) (*entity.ImportResultEntry, error)
	ListResults(settingsID string, limit, offset int) ([]*entity.ImportResultEntry, error)
}
