// Command tracker runs Tiny-YOLOv2 over camera, image or directory frames and
// publishes a marker for every detection of the configured label.
package main

import (
	"context"
	"flag"
	"image"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nvr-ai/go-yolo/inference"
	"github.com/nvr-ai/go-yolo/internal/logger"
	"github.com/nvr-ai/go-yolo/tracker"
	"github.com/nvr-ai/go-yolo/util"
	"github.com/nvr-ai/go-yolo/visual"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

func main() {
	var (
		configPath string
		imagePath  string
		dirPath    string
		deviceID   int
		outputDir  string
	)
	flag.StringVar(&configPath, "config", "", "Path to tracker YAML config (defaults are used when empty)")
	flag.StringVar(&imagePath, "image", "", "Process a single image file")
	flag.StringVar(&dirPath, "dir", "", "Process every image in a directory")
	flag.IntVar(&deviceID, "device", 0, "Video capture device when no image or dir is given")
	flag.StringVar(&outputDir, "output", "", "Write annotated frames to this directory")
	flag.Parse()

	cfg := tracker.DefaultConfig()
	if configPath != "" {
		loaded, err := tracker.LoadConfig(configPath)
		if err != nil {
			logger.New(false).Fatal("loading config", zap.String("path", configPath), zap.Error(err))
		}
		cfg = loaded
	}

	log := logger.New(cfg.Debug)
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, imagePath, dirPath, deviceID, outputDir); err != nil {
		log.Fatal("tracker stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg tracker.Config, log *zap.Logger, imagePath, dirPath string, deviceID int, outputDir string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	detector, err := cfg.DetectorConfig()
	if err != nil {
		return err
	}

	session, err := inference.NewSession(inference.SessionArgs{
		ModelPath:   cfg.ModelPath,
		LibraryPath: cfg.LibraryPath,
		Provider:    inference.Provider(cfg.Provider),
		InputName:   cfg.InputName,
		OutputName:  cfg.OutputName,
		Width:       cfg.TensorWidth,
		Height:      cfg.TensorHeight,
		Normalize:   cfg.Normalize,
		Detector:    detector,
	})
	if err != nil {
		return err
	}
	defer session.Close()

	var pub tracker.Publisher = tracker.LogPublisher{Logger: log}
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}
		pub = &visual.FilePublisher{Publisher: pub, Dir: outputDir}
	}

	processor, err := tracker.NewProcessor(cfg, detector, pub, log)
	if err != nil {
		return err
	}

	log.Info("tracker started",
		zap.String("model", cfg.ModelPath),
		zap.String("label", cfg.Label),
		zap.Float32("confidence", cfg.Confidence),
		zap.Int("tensor_width", cfg.TensorWidth),
		zap.Int("tensor_height", cfg.TensorHeight),
	)

	handle := func(mat gocv.Mat) error {
		return processFrame(ctx, cfg, session, processor, log, mat)
	}

	switch {
	case imagePath != "":
		mat := gocv.IMRead(imagePath, gocv.IMReadColor)
		defer mat.Close()
		if mat.Empty() {
			return errors.Errorf("cannot read image %s", imagePath)
		}
		return handle(mat)

	case dirPath != "":
		files, err := util.LoadDirectoryImageFiles(dirPath)
		if err != nil {
			return err
		}
		for _, f := range files {
			if ctx.Err() != nil {
				return nil
			}
			mat, err := gocv.IMDecode(f.Data, gocv.IMReadColor)
			if err != nil {
				log.Warn("skipping undecodable frame", zap.String("path", f.Path), zap.Error(err))
				continue
			}
			err = handle(mat)
			mat.Close()
			if err != nil {
				return errors.Wrap(err, f.Path)
			}
		}
		return nil

	default:
		webcam, err := gocv.OpenVideoCapture(deviceID)
		if err != nil {
			return errors.Wrapf(err, "opening video capture device %d", deviceID)
		}
		defer webcam.Close()

		mat := gocv.NewMat()
		defer mat.Close()
		for ctx.Err() == nil {
			if ok := webcam.Read(&mat); !ok {
				return errors.Errorf("cannot read device %d", deviceID)
			}
			if mat.Empty() {
				continue
			}
			if err := handle(mat); err != nil {
				return err
			}
		}
		return nil
	}
}

// processFrame resizes a BGR frame to the model input, runs inference and hands
// the output grid to the processor. Boxes are drawn on the resized frame.
func processFrame(ctx context.Context, cfg tracker.Config, session *inference.Session, processor *tracker.Processor, log *zap.Logger, mat gocv.Mat) error {
	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(mat, &resized, image.Pt(cfg.TensorWidth, cfg.TensorHeight), 0, 0, gocv.InterpolationLinear)

	img, err := resized.ToImage()
	if err != nil {
		return errors.Wrap(err, "converting frame")
	}

	start := time.Now()
	output, err := session.Run(img)
	if err != nil {
		return err
	}
	inferred := time.Since(start)

	markers, err := processor.ProcessOutput(ctx, output, visual.NewMatFrame(&resized))
	if err != nil {
		return err
	}

	log.Debug("frame processed",
		zap.Int("markers", len(markers)),
		zap.Duration("inference", inferred),
		zap.Duration("total", time.Since(start)),
	)
	return nil
}
