package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"
	"github.com/hajimehoshi/ebiten/v2"

	"promage2/config"
	"promage2/data"
	"promage2/generation"
	"promage2/screens"
	"promage2/systems"
	"promage2/terminal"
	"promage2/xmlutil"
)

func main() {
	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	settings, err := config.LoadSettings(opts.SettingsPath)
	if err != nil {
		log.Fatal(err)
	}
	opts.Apply(&settings)

	g := generation.NewGenerator()
	if settings.Seed != 0 {
		g.SetSeed(settings.Seed)
	}
	// The terminal viewer owns the tty, keep the console in memory
	g.Console.Echo = !opts.Terminal

	if err := data.LoadDirectory(g, settings.DataDir); err != nil {
		log.Fatal(err)
	}
	templates := data.NewMarkerTemplateManager()
	if err := templates.LoadFile(filepath.Join(settings.DataDir, data.MarkersFile)); err != nil {
		log.Fatal(err)
	}

	def, err := g.MapDefs.Lookup(settings.MapDef)
	if err != nil {
		log.Fatal(err)
	}
	p := g.NewPipeline(def)
	if err := p.Regenerate(); err != nil {
		log.Fatal(err)
	}

	switch {
	case opts.Dump:
		defer p.Close()
		fmt.Print(terminal.RenderText(p.Final(), templates))
		if opts.Save != "" {
			if err := saveMapDef(p, opts.Save); err != nil {
				log.Fatal(err)
			}
		}
	case opts.Terminal:
		defer p.Close()
		if err := runTerminal(p, g, templates); err != nil {
			log.Fatal(err)
		}
	default:
		runEditor(p, g, templates, settings, opts.Save)
	}
}

func saveMapDef(p *generation.Pipeline, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()
	return xmlutil.Write(file, p.SaveToXml())
}

func runTerminal(p *generation.Pipeline, g *generation.Generator, templates *data.MarkerTemplateManager) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal screen: %w", err)
	}
	defer screen.Fini()

	return terminal.NewViewer(screen, p, g.Console, templates).Run()
}

func runEditor(p *generation.Pipeline, g *generation.Generator, templates *data.MarkerTemplateManager, settings config.Settings, savePath string) {
	var tileset *systems.Tileset
	if settings.Tileset != "" {
		ts, err := systems.NewTileset(settings.Tileset, config.TileSize)
		if err != nil {
			log.Printf("Warning: %v, drawing flat tiles", err)
		} else {
			tileset = ts
		}
	}

	stack := screens.NewScreenStack()
	renderer := systems.NewMapRenderer(tileset, templates, config.MapScreenWidth, config.MapScreenHeight)
	editor := screens.NewEditorScreen(stack, g, p, renderer)
	editor.SavePath = savePath
	stack.Push(editor)

	ebiten.SetWindowSize(config.GetScreenDimensions())
	ebiten.SetWindowTitle("ProMage2 - " + p.Def().Name)
	if err := ebiten.RunGame(stack); err != nil {
		log.Fatal(err)
	}
}
