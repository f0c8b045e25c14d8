package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"sync"

	"github.com/pkg/errors"

	"github.com/aabizri/lsysdraw"
	"github.com/aabizri/lsysdraw/canvas"
	"github.com/aabizri/lsysdraw/interchange"
	"github.com/aabizri/lsysdraw/interchange/lsdf"
)

const (
	sequencerQueueSize = 5
	orderInQueueSize   = 5
	resultQueueSize    = 5
	outQueueSize       = 5
)

var workersMax = runtime.NumCPU()

func main() {
	var (
		inputPath = flag.String("f", "", "read the LSDF scene stream from a file instead of stdin")
		prefix    = flag.String("o", "out-", "output filename prefix, sequence number and .png are appended")
	)
	flag.Parse()

	in := io.Reader(os.Stdin)
	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatalf("Error while opening input: %v", err)
		}
		defer f.Close()
		in = f
	}

	if err := listen(*prefix, in, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

// listen decodes scenes off the reader, renders them through the pipeline
// and writes one numbered PNG per scene, in input order.
func listen(prefix string, r io.Reader, ew io.Writer) error {
	in, out := buildPipeline()

	// Signal that the pipeline is empty. The loop keeps draining past the
	// first write error: the producer side upstream must never back up on a
	// full queue, or the decode loop would block before reading the error.
	closed := make(chan error, 1)
	go func() {
		var failed int
		var writeErr error
		for res := range out {
			if res.err != nil {
				fmt.Fprintf(ew, "Sequence %d failed: %v\n", res.seq, res.err)
				failed++
				continue
			}
			if writeErr != nil {
				continue
			}

			path := fmt.Sprintf("%s%03d.png", prefix, res.seq)
			if err := writePNG(path, res.img); err != nil {
				writeErr = errors.Wrapf(err, "error while writing sequence %d", res.seq)
				continue
			}
			fmt.Fprintf(ew, "Sequence %d written to %s\n", res.seq, path)
		}

		switch {
		case writeErr != nil:
			closed <- writeErr
		case failed > 0:
			closed <- errors.Errorf("%d scene(s) failed to render", failed)
		default:
			closed <- nil
		}
	}()

	lsdfDecoder := lsdf.NewDecoder(r)
	for {
		format, err := lsdfDecoder.Decode()
		if err == io.EOF {
			close(in)
			break
		} else if err != nil {
			return errors.Wrap(err, "error while decoding lsdf")
		}

		scene, err := format.Import()
		if err != nil {
			return errors.Wrap(err, "error while importing scene")
		}

		in <- scene
	}

	return <-closed
}

func writePNG(path string, img *canvas.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := img.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// buildPipeline wires sequencing, a render worker pool and an
// order-restoring resolver. Renders are independent computations, so they
// run concurrently; the resolver puts them back in input order.
func buildPipeline() (in chan<- *interchange.Scene, out <-chan *result) {
	sequencerQueue := make(chan *interchange.Scene, sequencerQueueSize)
	orderInQueue := make(chan *order, orderInQueueSize)
	resultQueue := make(chan *result, resultQueueSize)
	outQueue := make(chan *result, outQueueSize)

	go sequence(sequencerQueue, orderInQueue)

	wg := &sync.WaitGroup{}
	wg.Add(workersMax)
	for i := 0; i < workersMax; i++ {
		go run(orderInQueue, resultQueue, wg)
	}
	go func() {
		wg.Wait()
		close(resultQueue)
	}()

	go resolve(resultQueue, outQueue)

	return sequencerQueue, outQueue
}

type order struct {
	scene *interchange.Scene
	seq   int
}

type result struct {
	img *canvas.Image
	err error
	seq int
}

func sequence(in <-chan *interchange.Scene, orderInQueue chan<- *order) {
	seq := 0
	for scene := range in {
		orderInQueue <- &order{
			scene,
			seq,
		}
		seq++
	}
	close(orderInQueue)
}

func run(orderInQueue <-chan *order, resultQueue chan<- *result, wg *sync.WaitGroup) {
	defer wg.Done()
	for o := range orderInQueue {
		img, err := renderScene(context.Background(), o.scene)
		resultQueue <- &result{
			img: img,
			err: err,
			seq: o.seq,
		}
	}
}

// resolve restores input order: results arriving early are parked in a
// buffer keyed by sequence number until their predecessors have passed.
func resolve(resultQueue <-chan *result, outQueue chan<- *result) {
	next := 0
	buffer := make(map[int]*result)
	for res := range resultQueue {
		buffer[res.seq] = res
		for {
			buffered, ok := buffer[next]
			if !ok {
				break
			}
			outQueue <- buffered
			delete(buffer, next)
			next++
		}
	}
	close(outQueue)
}

// renderScene grows the scene's system and interprets the result onto a
// fresh image canvas.
func renderScene(ctx context.Context, scene *interchange.Scene) (*canvas.Image, error) {
	system := lsysdraw.New(scene.Parameters)
	if err := system.DerivateUntil(ctx, scene.Generations); err != nil {
		return nil, err
	}

	surface := canvas.NewImage(scene.Width, scene.Height, scene.Background)
	if _, err := lsysdraw.Interpret(system.Export(), scene.Turtle, surface); err != nil {
		return nil, err
	}
	return surface, nil
}
