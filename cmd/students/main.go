package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/kjk/students/config"
	"github.com/kjk/students/log"
	"github.com/kjk/students/recordfile"
	"github.com/kjk/students/session"
	"github.com/kjk/students/student"
	"github.com/kjk/students/u"
)

func backupDataFile(c *config.Config) {
	if c.BackupDir == "" {
		return
	}
	dst, err := recordfile.Backup(c.DataFile, c.BackupDir, c.BackupFormat)
	if log.IfErrf(err, "backup of '%s' failed with '%s'", c.DataFile, err) {
		fmt.Printf("Warning: backup failed: %s\n", err)
		return
	}
	if dst != "" {
		log.Logf("backed up '%s' to '%s' (%s)\n", c.DataFile, dst, u.FormatSize(u.FileSize(dst)))
	}
}

func main() {
	// .env is optional
	_ = godotenv.Load()

	c, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
	log.Verbose = c.Verbose
	// log output goes only to files, terminal belongs to the session
	log.Init(&log.Config{Dir: c.LogDir})
	defer log.Close()
	log.Logf("starting, data file: '%s'\n", c.DataFile)

	backupDataFile(c)

	store := student.NewStore()
	sess := session.New(store, c.DataFile, os.Stdin, os.Stdout)
	sess.Load()
	if err := sess.Run(); err != nil {
		log.Errorf("session ended with '%s'", err)
	}
}
