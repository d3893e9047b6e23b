package main

import (
	"reflect"
	"testing"
)

func TestDialogExtensions(t *testing.T) {
	got := dialogExtensions([]string{".glb", ".gltf", ".obj"})
	want := []string{"glb", "gltf", "obj"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("dialogExtensions() = %v, want %v", got, want)
	}
	if got := dialogExtensions(nil); len(got) != 0 {
		t.Errorf("dialogExtensions(nil) = %v, want empty", got)
	}
}
