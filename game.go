package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/lizzyinspace/atlas"
	"github.com/milk9111/lizzyinspace/levels"
	"github.com/milk9111/lizzyinspace/obj"
	"github.com/milk9111/lizzyinspace/prefabs"
	"golang.org/x/image/colornames"
)

var (
	backgroundColor = color.RGBA{R: 50, G: 150, B: 50, A: 255}
	obstacleColor   = color.RGBA{R: 100, G: 50, B: 50, A: 255}
)

type Game struct {
	app *App

	frames    int
	paused    bool
	quit      bool
	pauseUI   *ebitenui.UI
	watcher   *prefabs.Watcher
	level     *levels.Level
	actor     *obj.Actor
	items     *obj.ItemSet
	inventory *obj.Inventory
	obstacles []obj.Rect
}

func NewGame(app *App) (*Game, error) {
	logger := app.Logger

	lvl, err := levels.LoadLevelFromFS(app.Config.Level)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", app.Config.Level, err)
	}

	actor, err := newActor(app, lvl)
	if err != nil {
		return nil, err
	}

	items, err := newItems(app, lvl)
	if err != nil {
		return nil, err
	}

	obstacles := make([]obj.Rect, len(lvl.Obstacles))
	for i, o := range lvl.Obstacles {
		obstacles[i] = obj.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
	}

	g := &Game{
		app:       app,
		level:     lvl,
		actor:     actor,
		items:     items,
		inventory: obj.NewInventory(),
		obstacles: obstacles,
	}

	if app.Config.Watch {
		w, err := prefabs.NewWatcher(app.Config.PrefabsDir)
		if err != nil {
			logger.Warn("prefab hot reload disabled", "dir", app.Config.PrefabsDir, "err", err)
		} else {
			g.watcher = w
			logger.Info("watching prefabs", "dir", app.Config.PrefabsDir)
		}
	}

	x, y := actor.Position()
	logger.Debug("level ready", "level", lvl.Name, "spawn_x", x, "spawn_y", y,
		"obstacles", len(obstacles), "items", items.Len())
	return g, nil
}

func newActor(app *App, lvl *levels.Level) (*obj.Actor, error) {
	spec, err := app.Prefabs.LoadActorSpec()
	if err != nil {
		return nil, err
	}
	sheet, err := atlas.Load(app.Assets, spec.Sheet)
	if err != nil {
		return nil, err
	}
	x, y := lvl.Spawn(screenWidth, screenHeight)
	actor, err := obj.NewActor(sheet, x, y, actorOptions(spec)...)
	if err != nil {
		return nil, fmt.Errorf("build actor %s: %w", spec.Name, err)
	}
	return actor, nil
}

func actorOptions(spec *prefabs.ActorSpec) []obj.ActorOption {
	opts := []obj.ActorOption{
		obj.WithSpeed(spec.MoveSpeed),
		obj.WithAnimationThreshold(spec.AnimationThresholdMs),
	}
	if spec.Frame.Width > 0 && spec.Frame.Height > 0 {
		opts = append(opts, obj.WithFrameSize(spec.Frame.Width, spec.Frame.Height))
	}
	if spec.Frame.Count > 0 {
		opts = append(opts, obj.WithFrameCount(spec.Frame.Count))
	}
	if spec.Draw.Width > 0 && spec.Draw.Height > 0 {
		opts = append(opts, obj.WithDrawSize(spec.Draw.Width, spec.Draw.Height))
	}
	return opts
}

func newItems(app *App, lvl *levels.Level) (*obj.ItemSet, error) {
	set := obj.NewItemSet()
	if len(lvl.Items) == 0 {
		return set, nil
	}

	spec, err := app.Prefabs.LoadItemsSpec()
	if err != nil {
		return nil, err
	}
	sheet, err := atlas.Load(app.Assets, spec.Sheet)
	if err != nil {
		return nil, err
	}
	sprites, err := atlas.Named(sheet, spec.Cell.Width, spec.Cell.Height, spec.Names)
	if err != nil {
		return nil, err
	}

	for _, it := range lvl.Items {
		img, ok := sprites[it.Name]
		if !ok {
			return nil, fmt.Errorf("level %s: unknown item %q", lvl.Name, it.Name)
		}
		set.Add(obj.NewItem(it.Name, img, it.X, it.Y))
	}
	return set, nil
}

// Close stops the prefab watcher, if any.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	g.frames++

	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.setPaused(!g.paused)
	}

	g.applyPrefabReloads()

	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.tick(obj.PollKeys(), 1000/float64(ebiten.TPS()))
	return nil
}

// tick runs one step of play and returns the names picked up during it.
func (g *Game) tick(keys obj.Keys, elapsedMs float64) []string {
	moving := g.actor.HandleInput(keys, g.obstacles)
	g.actor.Update(elapsedMs, moving)

	picked := g.items.Collect(g.actor.Bounds())
	if len(picked) > 0 {
		g.inventory.Add(picked...)
		for _, name := range picked {
			g.app.Logger.Info("picked up item", "name", name, "total", g.inventory.Len(), "left", g.items.Len())
		}
	}
	return picked
}

func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if paused {
		g.pauseUI = NewPauseUI(g)
	}
	g.app.Logger.Debug("pause toggled", "paused", paused)
}

func (g *Game) applyPrefabReloads() {
	if g.watcher == nil {
		return
	}
	select {
	case err, ok := <-g.watcher.Errors:
		if ok && err != nil {
			g.app.Logger.Warn("prefab watcher error", "err", err)
		}
	default:
	}
	for _, name := range g.watcher.Poll() {
		g.reloadPrefab(name)
	}
}

func (g *Game) reloadPrefab(name string) {
	logger := g.app.Logger
	switch name {
	case prefabs.ActorFile:
		spec, err := g.app.Prefabs.LoadActorSpec()
		if err != nil {
			logger.Warn("keeping previous actor tuning", "file", name, "err", err)
			return
		}
		if err := g.actor.SetSpeed(spec.MoveSpeed); err != nil {
			logger.Warn("rejected move speed", "err", err)
		}
		if err := g.actor.SetAnimationThreshold(spec.AnimationThresholdMs); err != nil {
			logger.Warn("rejected animation threshold", "err", err)
		}
		logger.Info("reloaded actor tuning", "speed", g.actor.Speed(), "threshold_ms", g.actor.AnimationThreshold())
	default:
		logger.Debug("prefab changed, applies on restart", "file", name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	for i, o := range g.level.Obstacles {
		r := g.obstacles[i]
		vector.FillRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), obstacleColor, false)
		if o.Label != "" {
			ebitenutil.DebugPrintAt(screen, o.Label, r.X, r.Y-20)
		}
	}

	g.items.Draw(screen)
	for _, it := range g.items.Active() {
		ebitenutil.DebugPrintAt(screen, it.Name, it.Rect.X, it.Rect.Y-20)
	}

	g.actor.Draw(screen)

	ebitenutil.DebugPrintAt(screen, g.hudText(), 10, screenHeight-24)

	if g.app.Config.Debug {
		g.drawDebug(screen)
	}

	if g.paused && g.pauseUI != nil {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) hudText() string {
	names := g.inventory.Names()
	if len(names) == 0 {
		return "Inventory: empty"
	}
	parts := make([]string, len(names))
	for i, n := range names {
		if c := g.inventory.Count(n); c > 1 {
			parts[i] = fmt.Sprintf("%s x%d", n, c)
		} else {
			parts[i] = n
		}
	}
	return "Inventory: " + strings.Join(parts, ", ")
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	x, y := g.actor.Position()
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    pos: (%d,%d) %s frame %d",
		g.frames, ebiten.ActualFPS(), x, y, g.actor.Direction(), g.actor.Frame()))

	strokeRect(screen, g.actor.Bounds(), colornames.Yellow)
	for _, r := range g.obstacles {
		strokeRect(screen, r, colornames.Red)
	}
	for _, it := range g.items.Active() {
		strokeRect(screen, it.Rect, colornames.Cyan)
	}
}

func strokeRect(screen *ebiten.Image, r obj.Rect, clr color.Color) {
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), 1, clr, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}
