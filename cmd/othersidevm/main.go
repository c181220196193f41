package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	otherside "github.com/syoyo/otherside"
	"github.com/syoyo/otherside/bytecode"
	"github.com/syoyo/otherside/glslstd"
	"github.com/syoyo/otherside/texture"
	"github.com/syoyo/otherside/vm"
)

func main() {
	var (
		demo        = flag.String("demo", "lerp", "Demo program to run: lerp or sample")
		texPath     = flag.String("texture", "", "Image file to bind for the sample demo")
		iterations  = flag.Int("iters", 5, "Loop iterations for the lerp demo")
		loop        = flag.Bool("loop", true, "Run the lerp demo's blend loop")
		verbose     = flag.Bool("v", false, "Verbose interpreter logging")
		interactive = flag.Bool("i", false, "Interactive mode with step debugger TUI")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		vm.SetLogger(logger)
		defer logger.Sync()
	}

	if *interactive && !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "interactive mode needs a terminal")
		os.Exit(1)
	}

	if err := run(*demo, *texPath, *iterations, *loop, *interactive); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(demo, texPath string, iterations int, loop, interactive bool) error {
	var (
		prog *bytecode.Program
		bind func(m *vm.VM) error
	)

	switch demo {
	case "lerp":
		prog = buildLerpDemo()
		bind = func(m *vm.VM) error {
			if err := m.SetVariableName("color", vm.F32Bytes(0.1, 0.2, 0.3)); err != nil {
				return err
			}
			if err := m.SetVariableName("target", vm.F32Bytes(1, 0.5, 0)); err != nil {
				return err
			}
			if err := m.SetVariableName("loopFlag", vm.BoolBytes(loop)); err != nil {
				return err
			}
			return m.SetVariableName("iterations", vm.I32Bytes(int32(iterations)))
		}

	case "sample":
		prog = buildSampleDemo()
		bind = func(m *vm.VM) error {
			tex, err := sampleTexture(texPath)
			if err != nil {
				return err
			}
			if err := m.BindTextureName("tex", tex); err != nil {
				return err
			}
			return m.SetVariableName("uv", vm.F32Bytes(0.75, 0.25))
		}

	default:
		return fmt.Errorf("unknown demo %q", demo)
	}

	if interactive {
		return runInteractive(prog, bind)
	}

	m := vm.New(prog, vm.WithProvider(glslstd.Provider{}))
	if err := m.Setup(); err != nil {
		return fmt.Errorf("setup: %w", err)
	}
	if err := bind(m); err != nil {
		return fmt.Errorf("bind inputs: %w", err)
	}
	if err := m.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	out, ok := m.ReadVariableName("gl_FragColor")
	if !ok {
		return fmt.Errorf("gl_FragColor was never written")
	}
	fmt.Printf("gl_FragColor = %v\n", vm.F32Slice(out))
	return nil
}

// sampleTexture loads the file at path, or builds a small gradient when
// no path is given.
func sampleTexture(path string) (*otherside.Texture, error) {
	if path != "" {
		return texture.Load(path, otherside.WrapClamp)
	}
	data := make([]float32, 0, 4*4*4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			data = append(data, float32(x)/3, float32(y)/3, 0.5, 1)
		}
	}
	return texture.FromTexels([]uint32{4, 4}, 4, data, otherside.WrapClamp)
}
