package formats

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const cubeFaceOBJ = `# two quads, two materials
mtllib cube.mtl
o Cube
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
usemtl Red
s off
f 1/1/1 2/2/1 3/3/1 4/4/1
usemtl Blue
f -4/-4/-1 -2/-2/-1 -1/-1/-1
o Lamp
f 1//1 2//1 3//1
`

func TestParseOBJ_Cube(t *testing.T) {
	obj, err := ParseOBJ([]byte(cubeFaceOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if len(obj.MaterialLibs) != 1 || obj.MaterialLibs[0] != "cube.mtl" {
		t.Errorf("expected mtllib cube.mtl, got %v", obj.MaterialLibs)
	}
	if len(obj.Positions) != 4 || len(obj.TexCoords) != 4 || len(obj.Normals) != 1 {
		t.Fatalf("unexpected pool sizes v=%d vt=%d vn=%d", len(obj.Positions), len(obj.TexCoords), len(obj.Normals))
	}
	if len(obj.Objects) != 2 {
		t.Fatalf("expected 2 objects, got %d", len(obj.Objects))
	}

	cube := obj.Objects[0]
	if cube.Name != "Cube" {
		t.Errorf("expected object Cube, got %q", cube.Name)
	}
	if len(cube.Groups) != 2 {
		t.Fatalf("expected 2 material groups, got %d", len(cube.Groups))
	}
	if cube.Groups[0].Material != "Red" || cube.Groups[1].Material != "Blue" {
		t.Errorf("unexpected materials %q, %q", cube.Groups[0].Material, cube.Groups[1].Material)
	}

	quad := cube.Groups[0].Faces[0]
	if len(quad.Corners) != 4 {
		t.Fatalf("expected quad with 4 corners, got %d", len(quad.Corners))
	}
	if quad.Corners[2] != (OBJCorner{Position: 2, TexCoord: 2, Normal: 0}) {
		t.Errorf("unexpected corner %+v", quad.Corners[2])
	}

	// Negative indices are relative to the end of each pool.
	tri := cube.Groups[1].Faces[0]
	want := []OBJCorner{
		{Position: 0, TexCoord: 0, Normal: 0},
		{Position: 2, TexCoord: 2, Normal: 0},
		{Position: 3, TexCoord: 3, Normal: 0},
	}
	for i, c := range tri.Corners {
		if c != want[i] {
			t.Errorf("corner %d: got %+v, want %+v", i, c, want[i])
		}
	}

	// The material state carries over to the next object.
	lamp := obj.Objects[1]
	if lamp.Groups[0].Material != "Blue" {
		t.Errorf("expected Lamp to inherit Blue, got %q", lamp.Groups[0].Material)
	}
	if c := lamp.Groups[0].Faces[0].Corners[0]; c.TexCoord != NoIndex || c.Normal != 0 {
		t.Errorf("expected v//vn corner, got %+v", c)
	}

	if obj.FaceCount() != 3 {
		t.Errorf("expected 3 faces, got %d", obj.FaceCount())
	}
}

func TestParseOBJ_DefaultObject(t *testing.T) {
	data := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Objects) != 1 || obj.Objects[0].Name != "default" {
		t.Fatalf("expected one default object, got %+v", obj.Objects)
	}
	if obj.Objects[0].Groups[0].Material != "" {
		t.Errorf("expected no material, got %q", obj.Objects[0].Groups[0].Material)
	}
}

func TestParseOBJ_DropsEmptyObjects(t *testing.T) {
	data := "o Empty\nusemtl A\no Full\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl B\nusemtl C\nf 1 2 3\n"
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Objects) != 1 || obj.Objects[0].Name != "Full" {
		t.Fatalf("expected only Full, got %d objects", len(obj.Objects))
	}
	if len(obj.Objects[0].Groups) != 1 || obj.Objects[0].Groups[0].Material != "C" {
		t.Errorf("expected a single group using C, got %+v", obj.Objects[0].Groups)
	}
}

func TestParseOBJ_Incomplete(t *testing.T) {
	obj, err := ParseOBJ([]byte("o Ghost\nf 1 2 3\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if !obj.Incomplete {
		t.Error("expected faces without positions to be incomplete")
	}

	obj, err = ParseOBJ([]byte("# nothing here\n"))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if obj.Incomplete {
		t.Error("an empty file is not incomplete")
	}
}

func TestParseOBJ_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"short vertex", "v 1 2\n", ErrMalformedOBJ},
		{"bad float", "v 1 x 2\n", ErrMalformedOBJ},
		{"two corner face", "v 0 0 0\nf 1 1\n", ErrMalformedOBJ},
		{"zero index", "v 0 0 0\nf 0 1 1\n", ErrMalformedOBJ},
		{"bad corner", "v 0 0 0\nf 1/1/1/1 1 1\n", ErrMalformedOBJ},
		{"usemtl without name", "usemtl\n", ErrMalformedOBJ},
		{"position out of range", "v 0 0 0\nf 1 2 3\n", ErrOBJIndexOutOfRange},
		{"normal out of range", "v 0 0 0\nvn 0 0 1\nf 1//2 1//1 1//1\n", ErrOBJIndexOutOfRange},
		{"relative before start", "v 0 0 0\nf -2 1 1\n", ErrOBJIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOBJ([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseOBJ_WarningsAndContinuation(t *testing.T) {
	data := "v 0 0 0\nv 1 0 0\nv 0 1 0\nl 1 2\nf 1 \\\n 2 3\n"
	obj, err := ParseOBJ([]byte(data))
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if len(obj.Warnings) != 1 {
		t.Errorf("expected one warning for 'l', got %v", obj.Warnings)
	}
	if obj.FaceCount() != 1 || len(obj.Objects[0].Groups[0].Faces[0].Corners) != 3 {
		t.Error("expected continued face line to parse as a triangle")
	}
	if line := obj.Objects[0].Groups[0].Faces[0].Line; line != 5 {
		t.Errorf("expected face on line 5, got %d", line)
	}
}

func TestParseOBJFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tri.obj")
	if err := os.WriteFile(path, []byte("v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	obj, err := ParseOBJFile(path)
	if err != nil {
		t.Fatalf("ParseOBJFile failed: %v", err)
	}
	if obj.FaceCount() != 1 {
		t.Errorf("expected 1 face, got %d", obj.FaceCount())
	}

	if _, err := ParseOBJFile(filepath.Join(t.TempDir(), "missing.obj")); err == nil {
		t.Error("expected error for missing file")
	}
}

const backpackMTL = `# Blender MTL File
newmtl Scene_-_Root
Ns 225.000000
Ka 1.0 1.0 1.0
Kd 0.8
Ks 0.5 0.5 0.5
Ke 0.0 0.0 0.0
d 1.0
illum 2
map_Kd diffuse.jpg
map_Bump -bm 0.5 normal.png
map_Ks -s 1 1 1 -o 0 0 specular maps/spec.jpg

newmtl Glass
Tr 0.25
map_Kd -clamp on glass.png
`

func TestParseMTL(t *testing.T) {
	mtl, err := ParseMTL([]byte(backpackMTL))
	if err != nil {
		t.Fatalf("ParseMTL failed: %v", err)
	}

	if len(mtl.Order) != 2 || mtl.Order[0] != "Scene_-_Root" || mtl.Order[1] != "Glass" {
		t.Fatalf("unexpected material order %v", mtl.Order)
	}

	root := mtl.Lookup("Scene_-_Root")
	if root == nil {
		t.Fatal("Scene_-_Root not found")
	}
	if root.Shininess != 225 {
		t.Errorf("expected Ns 225, got %f", root.Shininess)
	}
	if root.Diffuse != [3]float32{0.8, 0.8, 0.8} {
		t.Errorf("expected single-value Kd to fill all channels, got %v", root.Diffuse)
	}
	if root.Illum != 2 {
		t.Errorf("expected illum 2, got %d", root.Illum)
	}
	if root.DiffuseMap != "diffuse.jpg" {
		t.Errorf("expected map_Kd diffuse.jpg, got %q", root.DiffuseMap)
	}
	if root.NormalMap != "normal.png" {
		t.Errorf("expected bump normal.png, got %q", root.NormalMap)
	}
	if root.SpecularMap != "specular maps/spec.jpg" {
		t.Errorf("expected map_Ks with options skipped, got %q", root.SpecularMap)
	}

	glass := mtl.Lookup("Glass")
	if glass.Dissolve != 0.75 {
		t.Errorf("expected dissolve 0.75 from Tr, got %f", glass.Dissolve)
	}
	if glass.DiffuseMap != "glass.png" {
		t.Errorf("expected glass.png, got %q", glass.DiffuseMap)
	}

	if mtl.Lookup("missing") != nil {
		t.Error("expected nil for unknown material")
	}
	var nilLib *MTL
	if nilLib.Lookup("any") != nil {
		t.Error("expected nil library lookup to return nil")
	}
}

func TestParseMTL_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"property before newmtl", "Kd 1 1 1\n"},
		{"newmtl without name", "newmtl\n"},
		{"bad color", "newmtl A\nKd 1 x 1\n"},
		{"map without file", "newmtl A\nmap_Kd -clamp on\n"},
		{"bad illum", "newmtl A\nillum two\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMTL([]byte(tt.data))
			if !errors.Is(err, ErrMalformedMTL) {
				t.Errorf("expected ErrMalformedMTL, got %v", err)
			}
		})
	}
}

func TestParseMTL_Windows1252(t *testing.T) {
	data := []byte("newmtl Caf\xe9\nmap_Kd textures\\caf\xe9 diffuse.png\n")

	mtl, err := ParseMTL(data)
	if err != nil {
		t.Fatalf("ParseMTL: %v", err)
	}
	mat := mtl.Lookup("Café")
	if mat == nil {
		t.Fatalf("material not found, have %v", mtl.Order)
	}
	if want := "textures\\caf\xe9 diffuse.png"; mat.DiffuseMap != want {
		t.Errorf("DiffuseMap = %q, want the raw bytes %q", mat.DiffuseMap, want)
	}
}

func TestParseOBJ_Windows1252Names(t *testing.T) {
	data := []byte("mtllib caf\xe9.mtl\no Th\xe9\xe2tre\nv 0 0 0\nv 1 0 0\nv 0 1 0\nusemtl Caf\xe9\nf 1 2 3\n")

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(obj.MaterialLibs) != 1 || obj.MaterialLibs[0] != "caf\xe9.mtl" {
		t.Errorf("MaterialLibs = %q, want the raw file name", obj.MaterialLibs)
	}
	if len(obj.Objects) != 1 || obj.Objects[0].Name != "Théâtre" {
		t.Fatalf("Objects = %+v", obj.Objects)
	}
	groups := obj.Objects[0].Groups
	if len(groups) != 1 || groups[0].Material != "Café" {
		t.Errorf("Groups = %+v", groups)
	}
}

func TestLineToUTF8(t *testing.T) {
	tests := []struct {
		in   []byte
		want string
	}{
		{[]byte("plain"), "plain"},
		{[]byte("d\xc3\xa9j\xc3\xa0"), "déjà"},
		{[]byte("d\xe9j\xe0"), "déjà"},
	}
	for _, tt := range tests {
		if got := lineToUTF8(tt.in); got != tt.want {
			t.Errorf("lineToUTF8(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
