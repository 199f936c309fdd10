package repository

import "github.com/jhoicas/Licencias-api/internal/domain/entity"

// FileRepository define el puerto del almacén de archivos.
type FileRepository interface {
	// EnsureFolder devuelve el ID de la carpeta con ese nombre, creándola
	// si no existe.
	EnsureFolder(name string) (string, error)
	Save(file *entity.StoredFile) error
}
