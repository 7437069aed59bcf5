package vkquad

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
	"golang.org/x/sync/errgroup"
)

//go:generate glslangValidator -V -o shaders/vert.spv shaders/shader.vert
//go:generate glslangValidator -V -o shaders/frag.spv shaders/shader.frag

const (
	VertexShaderFile   = "vert.spv"
	FragmentShaderFile = "frag.spv"
)

// ShaderProgram holds the compiled SPIR-V for both stages.
type ShaderProgram struct {
	Vertex   []byte
	Fragment []byte
}

// ShaderLoader resolves shader blobs by trying Dirs in order.
type ShaderLoader struct {
	Dirs     []string
	ReadFile func(path string) ([]byte, error)
}

func NewShaderLoader(dirs []string) *ShaderLoader {
	return &ShaderLoader{
		Dirs:     dirs,
		ReadFile: os.ReadFile,
	}
}

// Find returns the contents of the first readable candidate for name and the
// path it came from.
func (l *ShaderLoader) Find(name string) ([]byte, string, error) {
	var tried []string
	for _, dir := range l.Dirs {
		path := filepath.Join(dir, name)
		data, err := l.ReadFile(path)
		if err == nil {
			return data, path, nil
		}
		tried = append(tried, path)
	}
	return nil, "", markf(ErrShaderNotFound, nil, "%s not found in %v", name, tried)
}

// LoadProgram reads the vertex and fragment blobs concurrently. A cancelled
// ctx, or a failure of the other stage, stops a load that has not started
// reading.
func (l *ShaderLoader) LoadProgram(ctx context.Context) (*ShaderProgram, error) {
	program := &ShaderProgram{}
	group, ctx := errgroup.WithContext(ctx)
	load := func(name string, out *[]byte) func() error {
		return func() error {
			if err := ctx.Err(); err != nil {
				return errors.Wrapf(err, "loading %s", name)
			}
			data, _, err := l.Find(name)
			if err != nil {
				return err
			}
			if err := validateSpirv(data); err != nil {
				return errors.Wrapf(err, "%s", name)
			}
			*out = data
			return nil
		}
	}
	group.Go(load(VertexShaderFile, &program.Vertex))
	group.Go(load(FragmentShaderFile, &program.Fragment))
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return program, nil
}

// SPIR-V is a stream of 32-bit words.
func validateSpirv(code []byte) error {
	if len(code) == 0 || len(code)%4 != 0 {
		return markf(ErrPipelineBuild, nil, "shader code of %d bytes is not a whole number of words", len(code))
	}
	return nil
}

func LoadShaderModule(device vk.Device, code []byte) (vk.ShaderModule, error) {
	if err := validateSpirv(code); err != nil {
		return vk.NullShaderModule, err
	}
	var module vk.ShaderModule
	ret := vk.CreateShaderModule(device, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(code)),
		PCode:    sliceUint32(code),
	}, nil, &module)
	if err := checkResult(ErrPipelineBuild, ret, "creating shader module"); err != nil {
		return vk.NullShaderModule, err
	}
	return module, nil
}
