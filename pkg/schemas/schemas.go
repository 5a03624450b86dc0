// Package schemas embeds the OpenAPI documents that drive form generation.
package schemas

import (
	"embed"
	"io/fs"
)

// RegistrationDocument is the path of the station registration document
// inside FS.
const RegistrationDocument = "station-registration.json"

// RegistrationOperation is the operationId of the step 1 intake.
const RegistrationOperation = "registerStation"

//go:embed station-registration.json
var files embed.FS

// FS exposes the embedded documents.
func FS() fs.FS {
	return files
}

// Registration returns a copy of the station registration document.
func Registration() []byte {
	raw, err := files.ReadFile(RegistrationDocument)
	if err != nil {
		panic(err)
	}
	return raw
}
