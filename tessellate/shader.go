package tessellate

import (
	"fmt"

	"github.com/gogpu/tess/internal/gpu"
)

// ShaderInput returns the WGSL struct a vertex shader declares to read
// patches written with attribs. The struct is compiled with naga first, so
// a returned declaration is known to match the buffer layout of [Uploaded].
func ShaderInput(attribs Attribs) (string, error) {
	if _, err := gpu.ValidatePatchInput(attribs); err != nil {
		return "", fmt.Errorf("tessellate: shader input for %v: %w", attribs, err)
	}
	return gpu.PatchInputWGSL(attribs), nil
}
