package env

import "os"
import "testing"
import "io/ioutil"
import "path/filepath"
import "github.com/franela/goblin"

var variables = []string{
	"KRUMSESSION_MEDIUM",
	"KRUMSESSION_KEY",
	"KRUMSESSION_DIR",
	"KRUMSESSION_REDIS_ADDR",
	"KRUMSESSION_REDIS_PASSWORD",
	"KRUMSESSION_REDIS_DB",
	"KRUMSESSION_REDIS_PREFIX",
}

func TestLoad(t *testing.T) {
	g := goblin.Goblin(t)

	var dir string

	g.Describe("Load", func() {
		g.BeforeEach(func() {
			for _, name := range variables {
				os.Unsetenv(name)
			}

			temp, e := ioutil.TempDir("", "krumsession-env-test")

			if e != nil {
				t.Fatalf("unable to create temp dir: %s", e)
			}

			dir = temp
		})

		g.AfterEach(func() {
			os.RemoveAll(dir)
		})

		g.It("should apply defaults", func() {
			config, e := Load()
			g.Assert(e == nil).Eql(true)
			g.Assert(config.Medium).Eql(MediumFile)
			g.Assert(config.Key).Eql("auth")
			g.Assert(config.Prefix).Eql("krumsession")
			g.Assert(config.Redis.Addr).Eql("127.0.0.1:6379")
			g.Assert(config.Redis.DB).Eql(0)
		})

		g.It("should ignore missing env files", func() {
			_, e := Load(filepath.Join(dir, "missing.env"))
			g.Assert(e == nil).Eql(true)
		})

		g.It("should read values from an env file", func() {
			file := filepath.Join(dir, ".env")
			contents := "KRUMSESSION_MEDIUM=redis\nKRUMSESSION_REDIS_DB=3\nKRUMSESSION_KEY=session\n"

			if e := ioutil.WriteFile(file, []byte(contents), 0600); e != nil {
				t.Fatalf("unable to write env file: %s", e)
			}

			config, e := Load(file)
			g.Assert(e == nil).Eql(true)
			g.Assert(config.Medium).Eql(MediumRedis)
			g.Assert(config.Redis.DB).Eql(3)
			g.Assert(config.Key).Eql("session")
		})

		g.It("should reject an unknown medium", func() {
			os.Setenv("KRUMSESSION_MEDIUM", "floppy")
			_, e := Load()
			g.Assert(e == nil).Eql(false)
		})

		g.It("should reject a non numeric redis db", func() {
			os.Setenv("KRUMSESSION_REDIS_DB", "first")
			_, e := Load()
			g.Assert(e == nil).Eql(false)
		})
	})
}
