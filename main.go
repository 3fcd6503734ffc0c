// Решатель игры "5 букв": подбирает следующее слово по результатам
// предыдущих попыток.
//
// Modes (mutually exclusive, checked in this order):
//
//	--add-word / --remove-word / --list-words  dictionary maintenance
//	--serve                                    HTTP solver API
//	default                                    interactive solving loop
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/pyatibukv/assets"
	"github.com/robalobadob/pyatibukv/internal/dict"
	"github.com/robalobadob/pyatibukv/internal/httpserver"
	"github.com/robalobadob/pyatibukv/internal/session"
	"github.com/robalobadob/pyatibukv/internal/solver"
	"github.com/robalobadob/pyatibukv/internal/store"
)

type options struct {
	Words      string `short:"w" long:"words" env:"DICT_FILE" description:"Путь к файлу словаря"`
	DB         string `long:"db" env:"DICT_DSN" description:"SQLite-словарь вместо файла (путь к БД)"`
	First      string `short:"f" long:"first" default:"опера" description:"Слово для первой попытки"`
	Ranker     string `long:"ranker" env:"RANKER" default:"freq" choice:"freq" choice:"minimax" description:"Стратегия выбора следующего слова"`
	AddWord    string `short:"a" long:"add-word" description:"Добавить слово в словарь и выйти"`
	RemoveWord string `short:"r" long:"remove-word" description:"Удалить слово из словаря и выйти"`
	ListWords  bool   `short:"l" long:"list-words" description:"Вывести слова из словаря"`
	Limit      int    `short:"n" long:"limit" default:"-1" description:"При --list-words: вывести первые N слов"`
	Serve      bool   `long:"serve" description:"Запустить HTTP API"`
	Addr       string `long:"addr" env:"ADDR" default:":5175" description:"Адрес HTTP API"`
}

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	st := openDictStore(opts)
	ctx := context.Background()

	switch {
	case opts.AddWord != "":
		os.Exit(runAdd(ctx, st, opts.AddWord))
	case opts.RemoveWord != "":
		os.Exit(runRemove(ctx, st, opts.RemoveWord))
	case opts.ListWords:
		os.Exit(runList(ctx, st, opts.Limit))
	case opts.Serve:
		runServe(st, opts)
	default:
		os.Exit(runSolve(ctx, st, opts))
	}
}

// openDictStore picks the dictionary backend: sqlite when --db is
// given, the word file otherwise.
func openDictStore(opts options) dict.Store {
	if opts.DB != "" {
		st, err := dict.OpenSQL(opts.DB)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", opts.DB).Msg("open dictionary database")
		}
		return st
	}
	path := opts.Words
	if path == "" {
		path = dict.DefaultPath()
	}
	return dict.NewFileStore(path)
}

// loadWords returns the dictionary snapshot, falling back to the
// embedded list when no word file exists yet.
func loadWords(ctx context.Context, st dict.Store) ([]string, error) {
	words, err := st.Load(ctx)
	if errors.Is(err, os.ErrNotExist) {
		log.Warn().Msg("dictionary file not found, using embedded word list")
		return assets.DefaultWords()
	}
	return words, err
}

func runAdd(ctx context.Context, st dict.Store, word string) int {
	err := st.Add(ctx, word)
	switch {
	case errors.Is(err, dict.ErrInvalidWord):
		fmt.Fprintf(os.Stderr, "Слово %q не подходит (нужно ровно 5 кириллических букв).\n", word)
		return 1
	case errors.Is(err, dict.ErrWordExists):
		fmt.Printf("Слово %q уже есть в словаре.\n", dict.Normalize(word))
		return 0
	case err != nil:
		log.Error().Err(err).Msg("add word")
		return 1
	}
	fmt.Printf("Слово %q добавлено в словарь.\n", dict.Normalize(word))
	return 0
}

func runRemove(ctx context.Context, st dict.Store, word string) int {
	err := st.Remove(ctx, word)
	switch {
	case errors.Is(err, dict.ErrWordNotFound):
		fmt.Printf("Слово %q не найдено в словаре.\n", dict.Normalize(word))
		return 1
	case err != nil:
		log.Error().Err(err).Msg("remove word")
		return 1
	}
	fmt.Printf("Слово %q удалено из словаря.\n", dict.Normalize(word))
	return 0
}

func runList(ctx context.Context, st dict.Store, limit int) int {
	words, err := loadWords(ctx, st)
	if err != nil {
		log.Error().Err(err).Msg("load dictionary")
		return 1
	}
	if limit >= 0 && limit < len(words) {
		words = words[:limit]
	}
	if len(words) == 0 {
		fmt.Println("Слова не найдены.")
		return 0
	}
	for _, w := range words {
		fmt.Println(w)
	}
	return 0
}

func runSolve(ctx context.Context, st dict.Store, opts options) int {
	words, err := loadWords(ctx, st)
	if err != nil {
		log.Error().Err(err).Msg("load dictionary")
		return 1
	}
	if len(words) == 0 {
		fmt.Fprintln(os.Stderr, "Словарь пуст или не найден. Завершаю.")
		return 1
	}

	sess := session.New(words, pickRanker(opts.Ranker))
	runner := &session.Runner{
		In:         os.Stdin,
		Out:        os.Stdout,
		FirstGuess: dict.Normalize(opts.First),
	}
	if err := runner.Run(sess); err != nil {
		if errors.Is(err, solver.ErrNoCandidates) {
			return 1
		}
		log.Error().Err(err).Msg("solving session failed")
		return 1
	}
	return 0
}

func runServe(st dict.Store, opts options) {
	srv := httpserver.New(store.NewMemoryStore(), st, pickRanker(opts.Ranker))
	log.Info().Str("addr", opts.Addr).Str("ranker", opts.Ranker).Msg("starting solver api")
	if err := srv.Start(opts.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func pickRanker(name string) solver.Ranker {
	if strings.EqualFold(name, "minimax") {
		return solver.MinimaxRanker{}
	}
	return solver.FrequencyRanker{}
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
