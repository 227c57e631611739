package blobstore

import (
	"context"
	"errors"
)

// ErrUpload indica que la subida de la imagen falló. Quien llama decide
// si aborta la operación (los formularios sí abortan).
var ErrUpload = errors.New("error uploading image")

// Store abstrae el almacenamiento de imágenes. Upload devuelve la URL
// pública del archivo subido.
type Store interface {
	Upload(ctx context.Context, data []byte) (string, error)
}
