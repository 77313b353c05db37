/*
DESCRIPTION
  errors.go defines the error values returned by the camera package.

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

package camera

import "errors"

var (
	// ErrShape is returned when a matrix does not have the dimensions an
	// operation requires, e.g. a camera matrix that is not 3x4.
	ErrShape = errors.New("unexpected matrix shape")

	// ErrInvalidArgument is returned for unrecognised configuration values
	// such as an unknown window coordinate convention.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDegenerate is returned when a camera matrix has no finite
	// decomposition, e.g. its camera center lies at infinity.
	ErrDegenerate = errors.New("degenerate camera matrix")
)
