package requests

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/theoremus-urban-solutions/transport-catalogue/svg"
)

// Color is the JSON form of an svg color: a name string, an [r, g, b] array
// or an [r, g, b, opacity] array.
type Color struct {
	svg.Color
}

// OrNone returns the color, or svg.NoneColor when it was never set.
func (c Color) OrNone() svg.Color {
	if c.Color == nil {
		return svg.NoneColor
	}
	return c.Color
}

func (c *Color) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		c.Color = svg.NamedColor(name)
		return nil
	}

	var parts []float64
	if err := json.Unmarshal(data, &parts); err != nil {
		return fmt.Errorf("color must be a string or a number array: %w", err)
	}
	if len(parts) != 3 && len(parts) != 4 {
		return fmt.Errorf("color array must have 3 or 4 items, got %d", len(parts))
	}
	var rgb [3]uint8
	for i := range rgb {
		v := parts[i]
		if v < 0 || v > 255 || v != math.Trunc(v) {
			return fmt.Errorf("color channel %v out of range", v)
		}
		rgb[i] = uint8(v)
	}
	if len(parts) == 3 {
		c.Color = svg.RGB{Red: rgb[0], Green: rgb[1], Blue: rgb[2]}
		return nil
	}
	if parts[3] < 0 || parts[3] > 1 {
		return fmt.Errorf("opacity %v out of range", parts[3])
	}
	c.Color = svg.RGBA{Red: rgb[0], Green: rgb[1], Blue: rgb[2], Opacity: parts[3]}
	return nil
}

func (c Color) MarshalJSON() ([]byte, error) {
	switch v := c.Color.(type) {
	case svg.NamedColor:
		return json.Marshal(string(v))
	case svg.RGB:
		return json.Marshal([]int{int(v.Red), int(v.Green), int(v.Blue)})
	case svg.RGBA:
		return json.Marshal([]any{int(v.Red), int(v.Green), int(v.Blue), v.Opacity})
	}
	return json.Marshal(svg.NoneColor.String())
}
