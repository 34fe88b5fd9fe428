package issuing

import (
	"context"

	"github.com/jhoicas/nota-fiscal/internal/domain/entity"
)

// DocumentPDFRenderer genera la representación gráfica de una nota.
type DocumentPDFRenderer interface {
	Render(ctx context.Context, doc *entity.FiscalDocument, kind, digest string) ([]byte, error)
}

// DocumentXMLRenderer genera la representación XML de una nota.
type DocumentXMLRenderer interface {
	Render(doc *entity.FiscalDocument, digest string) ([]byte, error)
}
