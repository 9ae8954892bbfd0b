package runtime

import (
	_c "context"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"gopkg.in/tomb.v2"

	"hermes/logger"
)

//Spooler watches a directory and executes every job file dropped into it,
//one at a time in arrival order. A job file should be written outside the
//directory and renamed into place, the rename arrives as a single Create
//event with the file already complete, a file written in place can be
//picked up half done.
type Spooler struct {
	ctx    _c.Context
	cancel _c.CancelFunc
	life   tomb.Tomb
	logger logrus.FieldLogger
	dir    string
}

func NewSpooler(originCtx _c.Context, dir string, logLevel string) *Spooler {
	ctx, cancel := _c.WithCancel(originCtx)
	return &Spooler{
		ctx:    ctx,
		cancel: cancel,
		logger: logger.New(logLevel).WithField("component", "spooler"),
		dir:    dir,
	}
}

func (s *Spooler) Serve() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(s.dir); err != nil {
		return err
	}
	s.life.Go(func() error {
		return watchSignals(s.ctx.Done(), func(sig os.Signal) {
			s.logger.Infof("notify system signal %s, done.", sig)
			s.cancel()
		})
	})
	s.life.Go(func() error {
		for {
			select {
			case event := <-watcher.Events:
				if event.Op&fsnotify.Create == 0 {
					continue
				}
				s.runOne(event.Name)
			case err := <-watcher.Errors:
				//release the signal watcher as well
				s.cancel()
				return err
			case <-s.life.Dying():
				return nil
			case <-s.ctx.Done():
				return nil
			}
		}
	})
	err = s.life.Wait()
	s.cancel()
	return err
}

func (s *Spooler) runOne(jobFile string) {
	name, ext, _, err := JobFileParts(jobFile)
	if err != nil {
		return
	}
	switch ext {
	case "yaml", "yml", "toml", "json":
	default:
		return
	}
	s.logger.Infof("spool picked up job %s.", name)
	job, err := New(s.ctx, name, ext, s.dir)
	if err != nil {
		s.logger.WithError(err).Errorf("can't load job %s.", name)
		return
	}
	if err := job.Run(); err != nil {
		s.logger.WithError(err).Errorf("job %s failed.", name)
		return
	}
	s.logger.Infof("job %s done.", name)
}
