package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Licencias-api/internal/domain/entity"
	"github.com/jhoicas/Licencias-api/internal/domain/repository"
)

var _ repository.FileRepository = (*FileRepo)(nil)

// FileRepo almacén de archivos sobre PostgreSQL. Los CSV crudos importados
// se guardan aquí; carpetas y archivos comparten tabla.
type FileRepo struct {
	q Querier
}

// NewFileRepository construye el adaptador. Pasar pool o tx (Querier).
func NewFileRepository(q Querier) *FileRepo {
	return &FileRepo{q: q}
}

// EnsureFolder devuelve el ID de la carpeta raíz con ese nombre, creándola
// si no existe.
func (r *FileRepo) EnsureFolder(name string) (string, error) {
	ctx := context.Background()
	var id string
	err := r.q.QueryRow(ctx,
		`SELECT id FROM stored_files WHERE file_name = $1 AND is_folder AND folder IS NULL`, name,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("get folder: %w", err)
	}

	id = uuid.New().String()
	_, err = r.q.Exec(ctx,
		`INSERT INTO stored_files (id, file_name, folder, is_folder, content, is_private, created_at)
		 VALUES ($1, $2, NULL, TRUE, NULL, FALSE, $3)`,
		id, name, time.Now(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Otra petición la creó primero; releer.
			err = r.q.QueryRow(ctx,
				`SELECT id FROM stored_files WHERE file_name = $1 AND is_folder AND folder IS NULL`, name,
			).Scan(&id)
			if err != nil {
				return "", fmt.Errorf("get folder: %w", err)
			}
			return id, nil
		}
		return "", fmt.Errorf("insert folder: %w", err)
	}
	return id, nil
}

// Save persiste un archivo con su contenido.
func (r *FileRepo) Save(file *entity.StoredFile) error {
	query := `
		INSERT INTO stored_files (id, file_name, folder, is_folder, content, is_private, created_at)
		VALUES ($1, $2, $3, FALSE, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		file.ID, file.FileName, nullIfEmpty(file.Folder), file.Content, file.IsPrivate, file.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert file: %w", err)
	}
	return nil
}
