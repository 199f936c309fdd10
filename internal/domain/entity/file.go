package entity

import "time"

// StoredFile archivo o carpeta del almacén de archivos. Los CSV crudos se
// guardan bajo una carpeta propia de la aplicación con nombre único
// prefijado por timestamp.
type StoredFile struct {
	ID        string
	FileName  string
	Folder    string // ID de la carpeta contenedora; vacío = raíz
	IsFolder  bool
	Content   []byte
	IsPrivate bool
	CreatedAt time.Time
}
