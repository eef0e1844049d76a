package secrets

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
)

// DotenvSource reads secrets from a dotenv file.
type DotenvSource struct {
	path string
}

// NewDotenvSource creates a source for the file at path.
func NewDotenvSource(path string) *DotenvSource {
	return &DotenvSource{path: path}
}

func (s *DotenvSource) Name() string {
	return SourceDotenv
}

func (s *DotenvSource) Load(ctx context.Context) (map[string]string, error) {
	vars, err := godotenv.Read(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read secrets file %s: %w", s.path, err)
	}
	return vars, nil
}
