package database

import (
	"bufio"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const badWordsURL = "https://raw.githubusercontent.com/LDNOOBW/List-of-Dirty-Naughty-Obscene-and-Otherwise-Bad-Words/refs/heads/master/en"

// SeedBadWords populates the bad_words table from the public LDNOOBW list.
// Student usernames and word set content are screened against it. A no-op
// when the table already has rows.
func (db *DB) SeedBadWords() error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM bad_words").Scan(&count); err != nil {
		return fmt.Errorf("failed to check bad words count: %w", err)
	}
	if count > 0 {
		log.Debug().Int("words", count).Msg("bad words filter already populated")
		return nil
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(badWordsURL)
	if err != nil {
		return fmt.Errorf("failed to download bad words list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from bad words URL: %d", resp.StatusCode)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Tx.Prepare(db.Dialect.RewriteQuery("INSERT INTO bad_words (word) VALUES (?)"))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	scanner := bufio.NewScanner(resp.Body)
	wordsAdded := 0
	for scanner.Scan() {
		word := strings.TrimSpace(strings.ToLower(scanner.Text()))
		if word == "" {
			continue
		}
		if _, err := stmt.Exec(word); err != nil {
			// Skip duplicates, keep going
			continue
		}
		wordsAdded++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading bad words: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	log.Info().Int("words", wordsAdded).Msg("bad words filter populated")
	return nil
}

// IsBadWord checks if a word is in the bad words list
func (db *DB) IsBadWord(word string) (bool, error) {
	cleanWord := strings.TrimSpace(strings.ToLower(word))

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM bad_words WHERE word = ?", cleanWord).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check bad word: %w", err)
	}
	return count > 0, nil
}

// ValidateWords checks a list of words against the filter and returns the
// offending ones.
func (db *DB) ValidateWords(words []string) ([]string, error) {
	var badWords []string
	for _, word := range words {
		isBad, err := db.IsBadWord(word)
		if err != nil {
			return nil, err
		}
		if isBad {
			badWords = append(badWords, word)
		}
	}
	return badWords, nil
}
