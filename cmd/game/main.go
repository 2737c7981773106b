package main

import (
	"bufio"
	"flag"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/m-siegel/space-shooter-game/internal/audio"
	"github.com/m-siegel/space-shooter-game/internal/config"
	"github.com/m-siegel/space-shooter-game/internal/loop"
	"github.com/m-siegel/space-shooter-game/internal/object"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML settings file")
		mute       = flag.Bool("mute", false, "disable sound")
		seed       = flag.Int64("seed", 0, "seed for reproducible spawns (0 picks one)")
	)
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal("loading settings", "err", err)
		}
	}

	var player object.AudioPlayer = object.NopAudio{}
	if !*mute {
		sp, err := audio.NewSpeaker()
		if err != nil {
			log.Warn("audio unavailable, playing silent", "err", err)
		} else {
			player = sp
			defer sp.Close()
		}
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		log.Fatal("failed to enable raw mode", "err", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	err = loop.Run(reader, os.Stdout, loop.Options{
		Config: cfg,
		Audio:  player,
		Rand:   rng,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		log.Fatal("game error", "err", err)
	}
}
