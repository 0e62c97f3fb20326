package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// CertificateKey builds the blob key for an uploaded certificate. The uuid is
// the collision-resistant part; the slugged basename only makes keys readable
// for humans poking at the bucket.
func CertificateKey(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	base := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))

	name := uuid.NewString()
	if s := slug.Make(base); s != "" {
		name += "_" + s
	}
	return "certificates/" + name + ext
}
