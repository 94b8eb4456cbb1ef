// Command spsa previews a four-facing character sheet. The top strip cycles
// every facing's walk row at the animation threshold; the actor below can be
// walked around the window with the arrow keys or WASD.
package main

import (
	"fmt"
	"image/color"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/lizzyinspace/assets"
	"github.com/milk9111/lizzyinspace/atlas"
	"github.com/milk9111/lizzyinspace/obj"
	"github.com/spf13/cobra"
)

const (
	previewWidth  = 512
	previewHeight = 512
	wall          = 8
)

type previewOptions struct {
	sheet     string
	assetsDir string
	frameW    int
	frameH    int
	count     int
	scale     int
	speed     int
	threshold float64
}

type previewGame struct {
	actor *obj.Actor
	walls []obj.Rect
	scale int

	stripFrame int
	stripTimer float64
	threshold  float64
}

func (g *previewGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	elapsed := 1000 / float64(ebiten.TPS())

	// the strip always walks, using the same threshold rule as the actor
	g.stripTimer += elapsed
	if g.stripTimer >= g.threshold {
		g.stripTimer = 0
		g.stripFrame++
	}

	moving := g.actor.HandleInput(obj.PollKeys(), g.walls)
	g.actor.Update(elapsed, moving)
	return nil
}

func (g *previewGame) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x20, 0x20, 0x28, 0xff})

	x := wall * 2
	for _, d := range obj.Directions {
		seq := g.actor.SequenceFor(d)
		f := seq[g.stripFrame%len(seq)]
		w, _ := f.Size()
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(float64(g.scale), float64(g.scale))
		op.GeoM.Translate(float64(x), float64(wall*2+12))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(f.Image(), op)
		ebitenutil.DebugPrintAt(screen, d.String(), x, wall*2-4)
		x += w*g.scale + wall
	}

	g.actor.Draw(screen)

	ax, ay := g.actor.Position()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s frame %d  (%d,%d)  timer %.0f",
		g.actor.Direction(), g.actor.Frame(), ax, ay, g.actor.Timer()), wall*2, previewHeight-wall*2-16)
}

func (g *previewGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return previewWidth, previewHeight
}

// borderWalls keeps the actor inside the window.
func borderWalls() []obj.Rect {
	return []obj.Rect{
		{X: 0, Y: 0, W: previewWidth, H: wall},
		{X: 0, Y: previewHeight - wall, W: previewWidth, H: wall},
		{X: 0, Y: 0, W: wall, H: previewHeight},
		{X: previewWidth - wall, Y: 0, W: wall, H: previewHeight},
	}
}

func newPreview(o previewOptions) (*previewGame, error) {
	if o.scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %d", o.scale)
	}
	sheet, err := atlas.Load(assets.NewCache(o.assetsDir), o.sheet)
	if err != nil {
		return nil, err
	}
	actor, err := obj.NewActor(sheet, previewWidth/2, previewHeight/2,
		obj.WithFrameSize(o.frameW, o.frameH),
		obj.WithFrameCount(o.count),
		obj.WithDrawSize(o.frameW*o.scale, o.frameH*o.scale),
		obj.WithSpeed(o.speed),
		obj.WithAnimationThreshold(o.threshold),
	)
	if err != nil {
		return nil, err
	}
	return &previewGame{
		actor:     actor,
		walls:     borderWalls(),
		scale:     o.scale,
		threshold: o.threshold,
	}, nil
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "spsa"})

	var o previewOptions
	cmd := &cobra.Command{
		Use:          "spsa",
		Short:        "Preview a four-facing character sheet",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := newPreview(o)
			if err != nil {
				return err
			}
			logger.Info("previewing sheet", "sheet", o.sheet, "frame", fmt.Sprintf("%dx%d", o.frameW, o.frameH), "count", o.count)
			ebiten.SetWindowSize(previewWidth, previewHeight)
			ebiten.SetWindowTitle("Sprite Sheet Preview - " + o.sheet)
			return ebiten.RunGame(g)
		},
	}
	cmd.Flags().StringVar(&o.sheet, "sheet", "characters/test.png", "sheet path under assets/images")
	cmd.Flags().StringVar(&o.assetsDir, "assets", "assets", "directory checked before the embedded assets")
	cmd.Flags().IntVar(&o.frameW, "frame-width", 16, "source frame width")
	cmd.Flags().IntVar(&o.frameH, "frame-height", 32, "source frame height")
	cmd.Flags().IntVar(&o.count, "count", 4, "frames per facing")
	cmd.Flags().IntVar(&o.scale, "scale", 2, "draw scale")
	cmd.Flags().IntVar(&o.speed, "speed", obj.DefaultSpeed, "pixels per step")
	cmd.Flags().Float64Var(&o.threshold, "threshold", obj.DefaultAnimationThreshold, "milliseconds per frame")

	if err := cmd.Execute(); err != nil {
		logger.Error("spsa failed", "err", err)
		os.Exit(1)
	}
}
