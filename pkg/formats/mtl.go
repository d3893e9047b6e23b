// MTL (Wavefront material library) parser.
package formats

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// MTL format errors.
var (
	ErrMalformedMTL = errors.New("malformed MTL line")
)

// MTL is a parsed material library.
type MTL struct {
	Materials map[string]*OBJMaterial
	Order     []string // material names in declaration order
	Warnings  []string
}

// OBJMaterial is one newmtl block. Texture map paths are stored byte for byte
// as written; only the name is decoded to UTF-8.
type OBJMaterial struct {
	Name      string
	Ambient   [3]float32 // Ka
	Diffuse   [3]float32 // Kd
	Specular  [3]float32 // Ks
	Emissive  [3]float32 // Ke
	Shininess float32    // Ns
	Dissolve  float32    // d, or 1-Tr
	Illum     int

	DiffuseMap  string // map_Kd
	SpecularMap string // map_Ks
	AmbientMap  string // map_Ka
	NormalMap   string // map_Bump, bump, norm
}

// Lookup returns the named material, or nil.
func (m *MTL) Lookup(name string) *OBJMaterial {
	if m == nil {
		return nil
	}
	return m.Materials[name]
}

// ParseMTL parses MTL data from a byte slice.
func ParseMTL(data []byte) (*MTL, error) {
	lines, err := scanLines(data)
	if err != nil {
		return nil, fmt.Errorf("reading MTL: %w", err)
	}

	mtl := &MTL{Materials: make(map[string]*OBJMaterial)}
	var current *OBJMaterial

	for _, l := range lines {
		key, args := l.fields[0], l.fields[1:]

		if key == "newmtl" {
			if len(args) < 1 {
				return nil, mtlError(l.num, "newmtl without a name")
			}
			current = &OBJMaterial{Name: nameToUTF8(args), Dissolve: 1}
			if _, dup := mtl.Materials[current.Name]; !dup {
				mtl.Order = append(mtl.Order, current.Name)
			}
			mtl.Materials[current.Name] = current
			continue
		}
		if current == nil {
			return nil, mtlError(l.num, key+" before newmtl")
		}

		switch key {
		case "Ka", "Kd", "Ks", "Ke":
			// "Kd spectral ..." and "Kd xyz ..." are not supported
			if len(args) > 0 && (args[0] == "spectral" || args[0] == "xyz") {
				mtl.Warnings = append(mtl.Warnings, fmt.Sprintf("mtl(%d): %s %s not supported", l.num, key, args[0]))
				continue
			}
			// A single value applies to all three channels.
			if len(args) == 1 {
				args = []string{args[0], args[0], args[0]}
			}
			v, err := parseFloats(args, 3)
			if err != nil {
				return nil, mtlError(l.num, fmt.Sprintf("%s: %v", key, err))
			}
			color := [3]float32{v[0], v[1], v[2]}
			switch key {
			case "Ka":
				current.Ambient = color
			case "Kd":
				current.Diffuse = color
			case "Ks":
				current.Specular = color
			case "Ke":
				current.Emissive = color
			}
		case "Ns", "d", "Tr":
			v, err := parseFloats(args, 1)
			if err != nil {
				return nil, mtlError(l.num, fmt.Sprintf("%s: %v", key, err))
			}
			switch key {
			case "Ns":
				current.Shininess = v[0]
			case "d":
				current.Dissolve = v[0]
			case "Tr":
				current.Dissolve = 1 - v[0]
			}
		case "illum":
			if len(args) < 1 {
				return nil, mtlError(l.num, "illum without a value")
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return nil, mtlError(l.num, fmt.Sprintf("illum: %v", err))
			}
			current.Illum = n
		case "map_Kd", "map_Ks", "map_Ka", "map_Bump", "map_bump", "bump", "norm":
			path := textureMapPath(args)
			if path == "" {
				return nil, mtlError(l.num, key+" without a file")
			}
			switch key {
			case "map_Kd":
				current.DiffuseMap = path
			case "map_Ks":
				current.SpecularMap = path
			case "map_Ka":
				current.AmbientMap = path
			default:
				current.NormalMap = path
			}
		default:
			mtl.Warnings = append(mtl.Warnings, fmt.Sprintf("mtl(%d): directive not supported: %s", l.num, key))
		}
	}

	return mtl, nil
}

// ParseMTLFile parses an MTL file from disk.
func ParseMTLFile(path string) (*MTL, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MTL file: %w", err)
	}
	return ParseMTL(data)
}

// textureMapArgs is the number of values each texture map option takes.
// A negative count means "up to" that many numeric values.
var textureMapArgs = map[string]int{
	"-blendu":  1,
	"-blendv":  1,
	"-bm":      1,
	"-boost":   1,
	"-cc":      1,
	"-clamp":   1,
	"-imfchan": 1,
	"-texres":  1,
	"-type":    1,
	"-mm":      2,
	"-o":       -3,
	"-s":       -3,
	"-t":       -3,
}

// textureMapPath skips map options and returns the file name, which may contain spaces.
func textureMapPath(args []string) string {
	i := 0
	for i < len(args) {
		n, ok := textureMapArgs[args[i]]
		if !ok {
			break
		}
		i++
		if n > 0 {
			i += n
			continue
		}
		for k := 0; k < -n && i < len(args); k++ {
			if _, err := strconv.ParseFloat(args[i], 32); err != nil {
				break
			}
			i++
		}
	}
	if i >= len(args) {
		return ""
	}
	return strings.Join(args[i:], " ")
}

func mtlError(line int, msg string) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformedMTL, line, msg)
}
