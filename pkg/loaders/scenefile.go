package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrVertexIndex is returned for a tri command naming a vertex that was not declared
var ErrVertexIndex = errors.New("vertex index out of range")

// SceneParser holds the state of one scene description being read:
// the scene so far, the current material, the vertex list and the transform stack.
type SceneParser struct {
	scene      *scene.Scene
	material   material.Material
	vertices   []core.Point3
	transforms *TransformStack
	logger     core.Logger
	line       int
}

// NewSceneParser creates a parser. A nil logger discards messages.
func NewSceneParser(logger core.Logger) *SceneParser {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &SceneParser{
		scene:      scene.New(),
		material:   material.Default(),
		vertices:   make([]core.Point3, 0),
		transforms: NewTransformStack(),
		logger:     logger,
	}
}

// ParseScene reads a scene description from an io.Reader
func ParseScene(reader io.Reader, logger core.Logger) (*scene.Scene, error) {
	parser := NewSceneParser(logger)

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		if err := parser.processLine(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading input: %w", err)
	}

	parser.logger.Debugf("Parsed %d lines: %d vertices, %s", parser.line, len(parser.vertices), parser.scene.Summary())
	return parser.scene, nil
}

// LoadScene loads and parses a scene file. The scene is named after the file.
func LoadScene(filename string, logger core.Logger) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	s, err := ParseScene(file, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	s.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return s, nil
}

func (p *SceneParser) processLine(line string) error {
	p.line++
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	fields := strings.Fields(line)
	if err := p.routeCommand(fields[0], fields[1:]); err != nil {
		return fmt.Errorf("line %d: %s: %w", p.line, fields[0], err)
	}
	return nil
}

func (p *SceneParser) routeCommand(cmd string, args []string) error {
	switch cmd {
	case "size":
		v, err := parseInts(args, 2)
		if err != nil {
			return err
		}
		p.scene.Width, p.scene.Height = v[0], v[1]
	case "maxdepth":
		v, err := parseInts(args, 1)
		if err != nil {
			return err
		}
		p.scene.MaxDepth = v[0]
	case "output":
		if len(args) < 1 {
			return fmt.Errorf("expected a file name")
		}
		p.scene.OutputName = args[0]
	case "camera":
		v, err := parseFloats(args, 10)
		if err != nil {
			return err
		}
		p.scene.Camera = geometry.NewCamera(
			core.NewPoint3(v[0], v[1], v[2]),
			core.NewPoint3(v[3], v[4], v[5]),
			core.NewVec3(v[6], v[7], v[8]),
			v[9],
		)
	case "directional":
		v, err := parseFloats(args, 6)
		if err != nil {
			return err
		}
		p.scene.AddDirectionalLight(core.NewVec3(v[0], v[1], v[2]), core.NewVec3(v[3], v[4], v[5]))
	case "point":
		v, err := parseFloats(args, 6)
		if err != nil {
			return err
		}
		p.scene.AddPointLight(core.NewPoint3(v[0], v[1], v[2]), core.NewVec3(v[3], v[4], v[5]))
	case "attenuation":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.scene.Lights.Attenuation = [3]float64{v[0], v[1], v[2]}
	case "ambient", "diffuse", "specular", "emission":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.setMaterialColor(cmd, core.NewVec3(v[0], v[1], v[2]))
	case "shininess":
		v, err := parseFloats(args, 1)
		if err != nil {
			return err
		}
		p.material.Shininess = v[0]
	case "maxverts":
		// vertices are kept in a growable slice
	case "vertex":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.vertices = append(p.vertices, core.NewPoint3(v[0], v[1], v[2]))
	case "tri":
		return p.addTriangle(args)
	case "sphere":
		v, err := parseFloats(args, 4)
		if err != nil {
			return err
		}
		p.scene.Shapes = append(p.scene.Shapes, geometry.NewTransformedSphere(
			core.NewPoint3(v[0], v[1], v[2]), v[3], p.transforms.Top(), p.material))
	case "translate":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.transforms.RightMultiply(core.Translate(v[0], v[1], v[2]))
	case "scale":
		v, err := parseFloats(args, 3)
		if err != nil {
			return err
		}
		p.transforms.RightMultiply(core.Scale(v[0], v[1], v[2]))
	case "rotate":
		v, err := parseFloats(args, 4)
		if err != nil {
			return err
		}
		p.transforms.RightMultiply(core.Rotate(core.NewVec3(v[0], v[1], v[2]), v[3]))
	case "pushTransform":
		p.transforms.Push()
	case "popTransform":
		if !p.transforms.Pop() {
			p.logger.Warnf("line %d: popTransform on an empty transform stack ignored", p.line)
		}
	default:
		p.logger.Debugf("line %d: unknown command %q ignored", p.line, cmd)
	}
	return nil
}

func (p *SceneParser) setMaterialColor(cmd string, c core.Vec3) {
	switch cmd {
	case "ambient":
		p.material.Ambient = c
	case "diffuse":
		p.material.Diffuse = c
	case "specular":
		p.material.Specular = c
	case "emission":
		p.material.Emission = c
	}
}

func (p *SceneParser) addTriangle(args []string) error {
	idx, err := parseInts(args, 3)
	if err != nil {
		return err
	}
	var v [3]core.Point3
	for i, n := range idx {
		if n < 0 || n >= len(p.vertices) {
			return fmt.Errorf("%w: %d (have %d vertices)", ErrVertexIndex, n, len(p.vertices))
		}
		v[i] = p.vertices[n]
	}
	p.scene.Shapes = append(p.scene.Shapes, geometry.NewTransformedTriangle(
		v[0], v[1], v[2], p.transforms.Top(), p.material))
	return nil
}

// parseFloats parses the first n arguments; extra arguments are ignored
func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d arguments, got %d", n, len(args))
	}
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

func parseInts(args []string, n int) ([]int, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d arguments, got %d", n, len(args))
	}
	values := make([]int, n)
	for i := 0; i < n; i++ {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}

// validateFilePath rejects empty paths and files without the scene extension
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}
	if ext := filepath.Ext(filepath.Clean(filename)); ext != scene.SceneFileExt {
		return fmt.Errorf("scene file must have the %s extension, got %q", scene.SceneFileExt, ext)
	}
	return nil
}
