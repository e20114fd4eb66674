// Package cli contains the obbcollide command line application.
package cli

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"

	"github.com/srizzi88/SENSEI-sub038/collision"
	"github.com/srizzi88/SENSEI-sub038/config"
	"github.com/srizzi88/SENSEI-sub038/logging"
	"github.com/srizzi88/SENSEI-sub038/mesh"
	"github.com/srizzi88/SENSEI-sub038/obbtree"
)

const (
	// Flags.
	configFlag = "config"
	debugFlag  = "debug"
	modeFlag   = "mode"
	roleFlag   = "role"
	levelFlag  = "level"
	printFlag  = "print"
	piecesFlag = "pieces"
)

type appState struct {
	logger logging.Logger
	out    io.Writer
}

// NewApp returns the obbcollide application writing its reports to out.
func NewApp(out io.Writer) *cli.App {
	state := &appState{out: out}
	configFlagDef := &cli.StringFlag{
		Name:     configFlag,
		Aliases:  []string{"c"},
		Usage:    "load the scene from `FILE`",
		Required: true,
	}
	roleFlagDef := &cli.IntFlag{
		Name:  roleFlag,
		Usage: "mesh role (0 or 1)",
	}

	return &cli.App{
		Name:      "obbcollide",
		Usage:     "find intersecting triangles of two meshes",
		Writer:    out,
		ErrWriter: out,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    debugFlag,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(debugFlag) {
				state.logger = logging.NewDebugLogger("obbcollide")
				c.Context = logging.EnableDebugMode(c.Context)
			} else {
				state.logger = logging.NewLogger("obbcollide")
				state.logger.SetLevel(logging.WARN)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "evaluate a scene and print its contacts",
				UsageText: "obbcollide run --config <scene.json> [--mode all|first|half]",
				Flags: []cli.Flag{
					configFlagDef,
					&cli.StringFlag{
						Name:  modeFlag,
						Usage: "override the collision mode of the scene",
					},
				},
				Action: state.runAction,
			},
			{
				Name:      "tree",
				Usage:     "print statistics of the OBB tree of one mesh",
				UsageText: "obbcollide tree --config <scene.json> [--role 0] [--level N] [--print]",
				Flags: []cli.Flag{
					configFlagDef,
					roleFlagDef,
					&cli.IntFlag{
						Name:  levelFlag,
						Usage: "also report the boxes at this level",
						Value: -1,
					},
					&cli.BoolFlag{
						Name:  printFlag,
						Usage: "dump every node",
					},
				},
				Action: state.treeAction,
			},
			{
				Name:      "dice",
				Usage:     "split the points of one mesh into spatially coherent pieces",
				UsageText: "obbcollide dice --config <scene.json> --pieces N [--role 0]",
				Flags: []cli.Flag{
					configFlagDef,
					roleFlagDef,
					&cli.IntFlag{
						Name:     piecesFlag,
						Usage:    "number of pieces",
						Required: true,
					},
				},
				Action: state.diceAction,
			},
		},
	}
}

func (s *appState) readScene(c *cli.Context) (*config.Scene, error) {
	return config.Read(c.Context, c.String(configFlag), s.logger)
}

func (s *appState) sceneMesh(c *cli.Context, scene *config.Scene) (*mesh.PolyData, error) {
	role := c.Int(roleFlag)
	if role != 0 && role != 1 {
		return nil, collision.NewInvalidRoleError(role)
	}
	pd := mesh.Flatten(scene.Inputs[role])
	if pd == nil {
		return nil, errors.Errorf("mesh %d is empty", role)
	}
	return pd, nil
}

func (s *appState) runAction(c *cli.Context) error {
	scene, err := s.readScene(c)
	if err != nil {
		return err
	}
	if c.IsSet(modeFlag) {
		mode, err := collision.ParseCollisionMode(c.String(modeFlag))
		if err != nil {
			return err
		}
		scene.Collision.CollisionMode = mode
	}
	f, err := scene.NewFilter(s.logger)
	if err != nil {
		return err
	}
	if err := f.Update(c.Context); err != nil {
		return err
	}
	printf(s.out, "%s", f.Result().String())
	printf(s.out, "%d contacts, %d box tests", f.NumberOfContacts(), f.NumberOfBoxTests())
	return nil
}

func (s *appState) treeAction(c *cli.Context) error {
	scene, err := s.readScene(c)
	if err != nil {
		return err
	}
	pd, err := s.sceneMesh(c, scene)
	if err != nil {
		return err
	}
	tree, err := buildTree(c.Context, pd, scene.Collision, s.logger)
	if err != nil {
		return err
	}
	stats, err := tree.Stats()
	if err != nil {
		return err
	}
	printf(s.out, "%s", stats.String())

	if level := c.Int(levelFlag); level >= 0 {
		boxes, err := tree.GenerateRepresentation(level)
		if err != nil {
			return err
		}
		printf(s.out, "level %d: %d boxes", level, boxes.NumberOfCells()/6)
	}
	if c.Bool(printFlag) {
		return tree.Print(s.out, tree.Root())
	}
	return nil
}

func (s *appState) diceAction(c *cli.Context) error {
	scene, err := s.readScene(c)
	if err != nil {
		return err
	}
	pd, err := s.sceneMesh(c, scene)
	if err != nil {
		return err
	}
	ids, err := obbtree.Dice(pd.Points(), c.Int(piecesFlag))
	if err != nil {
		return err
	}
	sizes := lo.CountValues(ids)
	pieces := lo.Keys(sizes)
	sort.Ints(pieces)

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Piece", "Points"})
	for _, id := range pieces {
		t.AppendRow(table.Row{id, sizes[id]})
	}
	t.AppendFooter(table.Row{"Total", len(ids)})
	printf(s.out, "%s", t.Render())
	return nil
}

func buildTree(ctx context.Context, pd *mesh.PolyData, cfg collision.Config, logger logging.Logger) (*obbtree.Tree, error) {
	tree := obbtree.NewTree(pd, logger)
	if err := tree.SetNumberOfCellsPerNode(cfg.NumberOfCellsPerNode); err != nil {
		return nil, err
	}
	tree.SetMaxLevel(cfg.MaxLevel)
	tree.SetTolerance(cfg.BoxTolerance)
	if err := tree.BuildLocator(ctx); err != nil {
		return nil, err
	}
	return tree, nil
}

func printf(w io.Writer, format string, a ...interface{}) {
	//nolint:errcheck
	fmt.Fprintf(w, format+"\n", a...)
}
