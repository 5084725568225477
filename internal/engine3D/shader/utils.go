package shader

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

var BlackTexture *rl.Texture2D

// InitDefaults initializes default textures and resources used by shaders.
func InitDefaults() {
	if BlackTexture == nil {
		img := rl.GenImageColor(1, 1, rl.Black)
		tex := rl.LoadTextureFromImage(img)
		rl.SetTextureWrap(tex, rl.TextureWrapClamp)
		rl.UnloadImage(img)
		BlackTexture = &tex
	}
}

// ReleaseDefaults frees what InitDefaults created.
func ReleaseDefaults() {
	if BlackTexture != nil {
		rl.UnloadTexture(*BlackTexture)
		BlackTexture = nil
	}
}
