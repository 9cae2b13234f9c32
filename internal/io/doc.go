// Package ioutils provides file system and image processing utilities.
//
// This package contains functions for:
//   - File writing and directory creation
//   - Deleting the artifacts of a previous run
//   - Compositing two rasterized sheets side by side
//   - Resizing images for previews
//
// # File Operations
//
//	// Write generated source
//	err := ioutils.WriteFile(ctx, "out/practice_c.ly", []byte(src))
//
//	// Remove stale outputs; failures are fatal
//	err := ioutils.DeleteExisting([]string{"out/practice_c.pdf", "out/practice_c.midi"}, nil)
//
// # Compositing
//
// The Compositor scans each image from the bottom for its lowest inked row,
// aligns both images on that baseline and places them side by side:
//
//	c := ioutils.NewCompositor(ioutils.DefaultCompositorConfig())
//	err := c.ComposeFiles(ctx, "c.png", "g.png", "c_g.png")
//
// # Previews
//
//	svc := ioutils.NewImageService()
//	thumb, _ := svc.ResizeImage(ctx, pngData, 800, 800)
package ioutils
