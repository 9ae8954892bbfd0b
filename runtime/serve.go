package runtime

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"gopkg.in/tomb.v2"
)

//Serve runs the job on its cron schedule until a system signal or the
//context ends it. Without a schedule the job runs exactly once.
func (j *Job) Serve() error {
	if j.config.Schedule == "" {
		return j.Run()
	}
	var life tomb.Tomb
	life.Go(func() error {
		return watchSignals(j.ctx.Done(), func(s os.Signal) {
			j.ctx.Logger().Infof("notify system signal %s, done.", s)
		})
	})
	//a run that outlives the interval must not overlap the next trigger,
	//overlapping triggers are skipped instead of stacked
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(j.config.Schedule, func() {
		if err := j.Run(); err != nil {
			j.ctx.Logger().WithError(err).Errorf("scheduled run failed.")
			life.Kill(err)
		}
	}); err != nil {
		j.ctx.Cancel()
		life.Wait()
		return err
	}
	c.Start()
	<-life.Dying()
	<-c.Stop().Done()
	j.ctx.Cancel()
	return life.Wait()
}

func watchSignals(done <-chan struct{}, notify func(os.Signal)) error {
	c := make(chan os.Signal, 1)
	signal.Notify(c)
	defer signal.Stop(c)
	for {
		select {
		case s := <-c:
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				notify(s)
				return nil
			}
		case <-done:
			return nil
		}
	}
}
