// Package data loads authored content into a generator
package data

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"promage2/generation"
	"promage2/motif"
	"promage2/tiles"
	"promage2/xmlutil"
)

// Content file names inside a data directory, in load order
const (
	TilesFile       = "Tiles.xml"
	MotifsFile      = "Motifs.xml"
	CustomStepsFile = "CustomSteps.xml"
	MapsFile        = "Maps.xml"
	MarkersFile     = "markers.json"
)

// LoadDirectory loads every content file in dir into g and closes the
// loading phase. Tiles.xml is required, the rest are optional. Image paths
// used by FromImage steps resolve against dir.
func LoadDirectory(g *generation.Generator, dir string) error {
	loaders := []struct {
		file     string
		required bool
		load     func(*generation.Generator, *xmlutil.Element) error
	}{
		{TilesFile, true, LoadTileDefs},
		{MotifsFile, false, LoadMotifs},
		{CustomStepsFile, false, LoadCustomSteps},
		{MapsFile, false, LoadMapDefs},
	}

	for _, l := range loaders {
		path := filepath.Join(dir, l.file)
		root, err := xmlutil.ParseFile(path)
		if errors.Is(err, os.ErrNotExist) && !l.required {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", l.file, err)
		}
		if err := l.load(g, root); err != nil {
			return fmt.Errorf("failed to load %s: %w", l.file, err)
		}
	}

	g.ImageDir = dir
	g.FinishLoading()
	g.Console.Infof("loaded %d tiles, %d motifs, %d custom steps, %d maps from %s",
		g.Tiles.Len(), g.Motifs.Len(), g.CustomDefs.Len(), g.MapDefs.Len(), dir)
	return nil
}

// LoadTileDefs reads <TileDefinitions><TileDefinition .../></TileDefinitions>
func LoadTileDefs(g *generation.Generator, root *xmlutil.Element) error {
	for _, e := range root.ChildrenNamed("TileDefinition") {
		def, err := tiles.NewDefFromXML(e)
		if err != nil {
			return err
		}
		if err := g.RegisterTileDef(def); err != nil {
			return err
		}
	}
	return nil
}

// LoadMotifs reads <Motifs><Motif name="..."><var value="..." type="..."/></Motif></Motifs>
func LoadMotifs(g *generation.Generator, root *xmlutil.Element) error {
	for _, e := range root.ChildrenNamed("Motif") {
		def, err := motif.NewDefFromXML(e, g.Console)
		if err != nil {
			return err
		}
		if err := g.RegisterMotif(def); err != nil {
			return err
		}
	}
	return nil
}

// LoadCustomSteps reads <CustomMapGenSteps><CustomMapGenStep .../></CustomMapGenSteps>.
// Definitions are registered in document order, so a definition may use
// any definition above it.
func LoadCustomSteps(g *generation.Generator, root *xmlutil.Element) error {
	for _, e := range root.ChildrenNamed("CustomMapGenStep") {
		def, err := g.NewCustomDefFromXML(e)
		if err != nil {
			return err
		}
		if err := g.RegisterCustomDef(def); err != nil {
			return err
		}
	}
	return nil
}

// LoadMapDefs reads <MapDefinitions><MapDefinition .../></MapDefinitions>
func LoadMapDefs(g *generation.Generator, root *xmlutil.Element) error {
	for _, e := range root.ChildrenNamed("MapDefinition") {
		def, err := generation.NewMapDefFromXML(e)
		if err != nil {
			return err
		}
		if err := g.RegisterMapDef(def); err != nil {
			return err
		}
	}
	return nil
}
