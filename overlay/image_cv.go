//go:build withcv
// +build withcv

/*
DESCRIPTION
  image_cv.go provides loading of reference images using OpenCV.

AUTHORS
  The Australian Ocean Lab (AusOcean)

LICENSE
  Copyright (C) 2026 the Australian Ocean Lab (AusOcean)

  It is free software: you can redistribute it and/or modify them
  under the terms of the GNU General Public License as published by the
  Free Software Foundation, either version 3 of the License, or (at your
  option) any later version.

  It is distributed in the hope that it will be useful, but WITHOUT
  ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
  FITNESS FOR A PARTICULAR PURPOSE. See the GNU General Public License
  for more details.

  You should have received a copy of the GNU General Public License
  in gpl.txt.  If not, see http://www.gnu.org/licenses.
*/

package overlay

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// LoadGray loads the image at path as 8-bit grayscale.
func LoadGray(path string) (*image.Gray, error) {
	m := gocv.IMRead(path, gocv.IMReadGrayScale)
	defer m.Close()
	if m.Empty() {
		return nil, fmt.Errorf("could not read image %s", path)
	}
	img, err := m.ToImage()
	if err != nil {
		return nil, fmt.Errorf("could not convert %s: %w", path, err)
	}
	return toGray(img), nil
}
