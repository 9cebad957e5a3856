package detection

import "image"

// point is a pixel coordinate used while tracing a connected region.
type point struct {
	x int
	y int
}

// FindRegions locates the connected components of foreground pixels in a
// binary mask and returns the tight bounding rectangle of each one.
//
// A pixel is foreground when its gray value is non-zero. Connectivity is
// 8-connected: diagonally touching foreground pixels belong to the same
// region. Only whole components are reported; holes enclosed by a region do
// not produce separate rectangles.
//
// Parameters:
//   - mask: Binary mask, typically produced by imaging.Threshold. Gray
//     value 0 is background, anything else is foreground.
//
// Returns:
//   - []Rectangle: One tight bounding rectangle per connected component,
//     unfiltered, in raster-scan discovery order (ordered by the first
//     pixel of each region encountered scanning top-to-bottom, then
//     left-to-right). The order is stable across runs on identical input.
//
// # Algorithm
//
//  1. Scan the mask row by row for an unvisited foreground pixel
//  2. Flood-fill from that pixel to collect the whole component
//  3. Reduce the component to the min/max X and Y of its member pixels
//  4. Continue the scan; already-visited pixels are skipped
func FindRegions(mask *image.Gray) []Rectangle {
	bounds := mask.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	visited := make([][]bool, height)
	for y := 0; y < height; y++ {
		visited[y] = make([]bool, width)
	}

	rectangles := make([]Rectangle, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !foreground(mask, x, y) || visited[y][x] {
				continue
			}

			region := make([]point, 0)
			floodFill(mask, visited, x, y, width, height, &region)

			minX, minY := width, height
			maxX, maxY := 0, 0
			for _, p := range region {
				if p.x < minX {
					minX = p.x
				}
				if p.x > maxX {
					maxX = p.x
				}
				if p.y < minY {
					minY = p.y
				}
				if p.y > maxY {
					maxY = p.y
				}
			}

			rectangles = append(rectangles, Rectangle{
				X: minX,
				Y: minY,
				W: maxX - minX + 1,
				H: maxY - minY + 1,
			})
		}
	}

	return rectangles
}

// floodFill collects one connected component starting from (startX, startY).
//
// Uses a stack-based approach (not recursive) to avoid stack overflow on
// large regions. Marks visited pixels and appends them to region.
// Uses 8-connectivity (includes diagonal neighbors).
func floodFill(mask *image.Gray, visited [][]bool, startX, startY, width, height int, region *[]point) {
	stack := []point{{x: startX, y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.x < 0 || p.x >= width || p.y < 0 || p.y >= height {
			continue
		}
		if visited[p.y][p.x] || !foreground(mask, p.x, p.y) {
			continue
		}

		visited[p.y][p.x] = true
		*region = append(*region, p)

		// 8-connected neighbors
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, point{x: p.x + dx, y: p.y + dy})
			}
		}
	}
}

// foreground reports whether the mask pixel at (x, y), relative to the
// mask's own origin, is foreground.
func foreground(mask *image.Gray, x, y int) bool {
	min := mask.Bounds().Min
	return mask.GrayAt(min.X+x, min.Y+y).Y != 0
}
