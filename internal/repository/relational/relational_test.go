package relational

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/bookshelf/internal/database"
	"github.com/forgo/bookshelf/internal/model"
	"github.com/forgo/bookshelf/internal/testing/fixtures"
	"github.com/forgo/bookshelf/internal/testing/testdb"
)

// ============================================================================
// SQLite Round Trips
// ============================================================================

func TestPersonSave_InsertThenLockedUpdate(t *testing.T) {
	t.Parallel()
	tdb := testdb.NewSQLite(t)
	repo := New(tdb.DB).Persons()
	ctx := testdb.Ctx(t)

	saved, err := repo.Save(ctx, &model.Person{FullName: "Test name", Title: "Test title", Age: 19})
	require.NoError(t, err)
	require.Positive(t, saved.ID)

	saved.Title = "Updated title"
	_, err = repo.Save(ctx, saved)
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated title", got.Title)
}

func TestSave_UnknownID_ReturnsErrNotFound(t *testing.T) {
	t.Parallel()
	tdb := testdb.NewSQLite(t)
	store := New(tdb.DB)
	ctx := testdb.Ctx(t)

	_, err := store.Persons().Save(ctx, &model.Person{ID: 1001, FullName: "n", Title: "t", Age: 1})
	assert.ErrorIs(t, err, database.ErrNotFound)

	_, err = store.Books().Save(ctx, &model.Book{ID: 2002, UserID: 1, Title: "t", Author: "a", PageCount: 1})
	assert.ErrorIs(t, err, database.ErrNotFound)

	assert.Zero(t, tdb.Count("person"))
	assert.Zero(t, tdb.Count("book"))
}

func TestBookQueries_SeededLibrary(t *testing.T) {
	t.Parallel()
	tdb := testdb.NewSQLite(t)
	fixtures.SeedLibrary(t, tdb.DB)
	store := New(tdb.DB)
	ctx := testdb.Ctx(t)

	book, err := store.Books().FindByID(ctx, fixtures.SeedLastBookID)
	require.NoError(t, err)
	assert.Equal(t, 200, book.PageCount)

	owned, err := store.Books().FindAllByOwner(ctx, fixtures.SeedPersonID)
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Less(t, owned[0].ID, owned[1].ID)

	all, err := store.Books().FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	persons, err := store.Persons().FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, persons, 1)
	assert.Equal(t, "Seed name", persons[0].FullName)
}

func TestDeleteByID_MissingIsNoOp(t *testing.T) {
	t.Parallel()
	tdb := testdb.NewSQLite(t)
	store := New(tdb.DB)

	assert.NoError(t, store.Books().DeleteByID(testdb.Ctx(t), 5))
	assert.NoError(t, store.Persons().DeleteByID(testdb.Ctx(t), 5))
}

func TestConcurrentUpdates_SameRow_AllSucceed(t *testing.T) {
	t.Parallel()
	tdb := testdb.NewSQLite(t)
	fixtures.SeedLibrary(t, tdb.DB)
	repo := New(tdb.DB).Persons()
	ctx := testdb.Ctx(t)

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		go func(age int) {
			defer wg.Done()
			_, err := repo.Save(ctx, &model.Person{ID: fixtures.SeedPersonID, FullName: "n", Title: "t", Age: age})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	got, err := repo.FindByID(ctx, fixtures.SeedPersonID)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, got.Age, 1)
}

func TestConcurrentUpdates_SharedFilePool_NoBusyErrors(t *testing.T) {
	t.Parallel()
	tdb := testdb.NewSQLiteFile(t, 10)
	fixtures.SeedLibrary(t, tdb.DB)
	repo := New(tdb.DB).Persons()
	ctx := testdb.Ctx(t)

	const rounds, writers = 10, 10
	var failed []error
	var mu sync.Mutex
	for round := 0; round < rounds; round++ {
		var wg sync.WaitGroup
		for i := 1; i <= writers; i++ {
			wg.Add(1)
			go func(age int) {
				defer wg.Done()
				if _, err := repo.Save(ctx, &model.Person{ID: fixtures.SeedPersonID, FullName: "n", Title: "t", Age: age}); err != nil {
					mu.Lock()
					failed = append(failed, err)
					mu.Unlock()
				}
			}(round*writers + i)
		}
		wg.Wait()
	}

	require.Empty(t, failed)
	got, err := repo.FindByID(ctx, fixtures.SeedPersonID)
	require.NoError(t, err)
	assert.Greater(t, got.Age, (rounds-1)*writers)
}

// ============================================================================
// Pessimistic Lock (sqlmock, PostgreSQL dialect)
// ============================================================================

func newPostgresMock(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(sqlx.NewDb(db, "postgres")), mock
}

func TestPostgresUpdate_LocksRowInsideTransaction(t *testing.T) {
	t.Parallel()
	store, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM person WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(1001)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1001))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE person SET age = $1, full_name = $2, title = $3 WHERE id = $4`)).
		WithArgs(19, "Test name", "Test title", int64(1001)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err := store.Persons().Save(context.Background(), &model.Person{ID: 1001, FullName: "Test name", Title: "Test title", Age: 19})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpdate_MissingRow_RollsBack(t *testing.T) {
	t.Parallel()
	store, mock := newPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM book WHERE id = $1 FOR UPDATE`)).
		WithArgs(int64(2002)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := store.Books().Save(context.Background(), &model.Book{ID: 2002, UserID: 1001, Title: "t", Author: "a", PageCount: 1})
	assert.ErrorIs(t, err, database.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsert_ReturnsGeneratedID(t *testing.T) {
	t.Parallel()
	store, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO person (full_name,title,age) VALUES ($1,$2,$3) RETURNING id`)).
		WithArgs("Test name", "Test title", 19).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1001))

	saved, err := store.Persons().Save(context.Background(), &model.Person{FullName: "Test name", Title: "Test title", Age: 19})
	require.NoError(t, err)
	assert.Equal(t, int64(1001), saved.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListByOwner_OrdersByID(t *testing.T) {
	t.Parallel()
	store, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, title, author, page_count FROM book WHERE user_id = $1 ORDER BY id`)).
		WithArgs(int64(1001)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "author", "page_count"}).
			AddRow(2002, 1001, "a", "b", 1).
			AddRow(3003, 1001, "c", "d", 2))

	books, err := store.Books().FindAllByOwner(context.Background(), 1001)
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, int64(3003), books[1].ID)
}
