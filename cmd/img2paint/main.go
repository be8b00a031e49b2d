// Command img2paint renders photographs as layered brush strokes.
//
// Usage:
//
//	img2paint paint -i photo.jpg -o painting.png [--oriented] [--brush brush.png]
//	img2paint angle -i photo.jpg -o angles.png
//	img2paint sharpness -i photo.jpg -o sharpness.png
package main

import "os"

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
