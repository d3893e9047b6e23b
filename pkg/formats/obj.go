// OBJ (Wavefront) geometry parser.
package formats

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrMalformedOBJ       = errors.New("malformed OBJ line")
	ErrOBJIndexOutOfRange = errors.New("OBJ face index out of range")
)

// NoIndex marks an absent texture coordinate or normal reference in a face corner.
const NoIndex = -1

// OBJ is a parsed Wavefront OBJ file. Attribute pools are shared by all objects.
type OBJ struct {
	MaterialLibs []string
	Positions    [][3]float32
	Normals      [][3]float32
	TexCoords    [][2]float32
	Objects      []*OBJObject

	// Incomplete is set when faces exist but no vertex positions were declared.
	Incomplete bool
	// Warnings collects unsupported directives; they never fail the parse.
	Warnings []string
}

// OBJObject is one "o" or "g" section.
type OBJObject struct {
	Name   string
	Groups []*OBJGroup
}

// OBJGroup is a run of faces sharing one usemtl material.
type OBJGroup struct {
	Material string // empty when no usemtl preceded the faces
	Faces    []OBJFace
}

// OBJFace is one polygon. Corners keep file order.
type OBJFace struct {
	Line    int
	Corners []OBJCorner
}

// OBJCorner holds zero-based attribute indices, NoIndex when absent.
type OBJCorner struct {
	Position int
	TexCoord int
	Normal   int
}

// FaceCount returns the number of faces across all objects.
func (o *OBJ) FaceCount() int {
	n := 0
	for _, obj := range o.Objects {
		for _, g := range obj.Groups {
			n += len(g.Faces)
		}
	}
	return n
}

type objParser struct {
	obj      *OBJ
	current  *OBJObject
	material string
	line     int
}

// ParseOBJ parses OBJ data from a byte slice.
func ParseOBJ(data []byte) (*OBJ, error) {
	lines, err := scanLines(data)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	p := &objParser{obj: &OBJ{}}
	for _, l := range lines {
		p.line = l.num
		if err := p.parseLine(l.fields); err != nil {
			return nil, err
		}
	}

	p.dropEmpty()

	if len(p.obj.Positions) == 0 {
		if p.obj.FaceCount() > 0 {
			p.obj.Incomplete = true
		}
		return p.obj, nil
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p.obj, nil
}

// ParseOBJFile parses an OBJ file from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func (p *objParser) parseLine(fields []string) error {
	args := fields[1:]
	switch fields[0] {
	case "v":
		v, err := parseFloats(args, 3)
		if err != nil {
			return p.errorf("vertex: %v", err)
		}
		p.obj.Positions = append(p.obj.Positions, [3]float32{v[0], v[1], v[2]})
	case "vn":
		v, err := parseFloats(args, 3)
		if err != nil {
			return p.errorf("normal: %v", err)
		}
		p.obj.Normals = append(p.obj.Normals, [3]float32{v[0], v[1], v[2]})
	case "vt":
		// v defaults to 0 for 1D textures
		if len(args) == 1 {
			args = append(args, "0")
		}
		v, err := parseFloats(args, 2)
		if err != nil {
			return p.errorf("texture coordinate: %v", err)
		}
		p.obj.TexCoords = append(p.obj.TexCoords, [2]float32{v[0], v[1]})
	case "f":
		return p.parseFace(args)
	case "o", "g":
		name := nameToUTF8(args)
		if name == "" {
			name = fmt.Sprintf("%s%d", fields[0], p.line)
		}
		p.beginObject(name)
	case "usemtl":
		if len(args) < 1 {
			return p.errorf("usemtl without a name")
		}
		p.useMaterial(nameToUTF8(args))
	case "mtllib":
		if len(args) < 1 {
			return p.errorf("mtllib without a file")
		}
		p.obj.MaterialLibs = append(p.obj.MaterialLibs, args...)
	case "s":
		// Smoothing groups do not affect imported normals.
	default:
		p.warnf("directive not supported: %s", fields[0])
	}
	return nil
}

func (p *objParser) beginObject(name string) {
	p.current = &OBJObject{Name: name}
	p.obj.Objects = append(p.obj.Objects, p.current)
}

func (p *objParser) useMaterial(name string) {
	p.material = name
	if p.current == nil {
		return
	}
	// Reuse the open group if nothing was drawn with the previous material.
	if n := len(p.current.Groups); n > 0 && len(p.current.Groups[n-1].Faces) == 0 {
		p.current.Groups[n-1].Material = name
		return
	}
	p.current.Groups = append(p.current.Groups, &OBJGroup{Material: name})
}

// group returns the face group the next face belongs to.
func (p *objParser) group() *OBJGroup {
	if p.current == nil {
		p.beginObject("default")
	}
	n := len(p.current.Groups)
	if n == 0 || p.current.Groups[n-1].Material != p.material {
		p.current.Groups = append(p.current.Groups, &OBJGroup{Material: p.material})
		n++
	}
	return p.current.Groups[n-1]
}

// parseFace parses f v1[/vt1][/vn1] v2[/vt2][/vn2] v3[/vt3][/vn3] ...
func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		return p.errorf("face with %d corners", len(args))
	}

	face := OBJFace{Line: p.line, Corners: make([]OBJCorner, len(args))}
	for i, arg := range args {
		parts := strings.Split(arg, "/")
		if len(parts) > 3 || parts[0] == "" {
			return p.errorf("bad face corner %q", arg)
		}

		c := OBJCorner{TexCoord: NoIndex, Normal: NoIndex}
		var err error
		if c.Position, err = p.resolve(parts[0], len(p.obj.Positions)); err != nil {
			return err
		}
		if len(parts) > 1 && parts[1] != "" {
			if c.TexCoord, err = p.resolve(parts[1], len(p.obj.TexCoords)); err != nil {
				return err
			}
		}
		if len(parts) > 2 && parts[2] != "" {
			if c.Normal, err = p.resolve(parts[2], len(p.obj.Normals)); err != nil {
				return err
			}
		}
		face.Corners[i] = c
	}

	g := p.group()
	g.Faces = append(g.Faces, face)
	return nil
}

// resolve converts a 1-based or negative (relative) OBJ index to zero-based.
func (p *objParser) resolve(s string, count int) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, p.errorf("bad index %q", s)
	}
	switch {
	case v > 0:
		return v - 1, nil
	case v < 0:
		return count + v, nil
	default:
		return 0, p.errorf("index 0 is not valid")
	}
}

// validate checks every corner against the final attribute pools.
func (p *objParser) validate() error {
	o := p.obj
	for _, obj := range o.Objects {
		for _, g := range obj.Groups {
			for _, f := range g.Faces {
				for _, c := range f.Corners {
					if c.Position < 0 || c.Position >= len(o.Positions) ||
						c.TexCoord >= len(o.TexCoords) || c.Normal >= len(o.Normals) ||
						c.TexCoord < NoIndex || c.Normal < NoIndex {
						return fmt.Errorf("%w: line %d", ErrOBJIndexOutOfRange, f.Line)
					}
				}
			}
		}
	}
	return nil
}

// dropEmpty removes face groups and objects that ended up with no faces.
func (p *objParser) dropEmpty() {
	objects := p.obj.Objects[:0]
	for _, obj := range p.obj.Objects {
		groups := obj.Groups[:0]
		for _, g := range obj.Groups {
			if len(g.Faces) > 0 {
				groups = append(groups, g)
			}
		}
		obj.Groups = groups
		if len(groups) > 0 {
			objects = append(objects, obj)
		}
	}
	p.obj.Objects = objects
}

func (p *objParser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedOBJ, p.line, fmt.Sprintf(format, args...))
}

func (p *objParser) warnf(format string, args ...any) {
	p.obj.Warnings = append(p.obj.Warnings, fmt.Sprintf("obj(%d): %s", p.line, fmt.Sprintf(format, args...)))
}
