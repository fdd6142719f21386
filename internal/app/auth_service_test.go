package app_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"notekeeper/internal/app"
	"notekeeper/internal/model"
)

func newAuthService(repo *mockUserRepository) *app.AuthService {
	return app.NewAuthService(repo, "test-secret", time.Hour)
}

func TestRegister_UsernameFromLocalPart(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newAuthService(repo)

	repo.On("GetByEmail", "alice@x.com").Return(nil, nil).Once()
	repo.On("GetByUsername", "alice").Return(nil, nil).Once()
	repo.On("Create", mock.MatchedBy(func(u *model.User) bool {
		assert.Equal(t, "alice", u.Username)
		assert.Equal(t, "alice@x.com", u.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cretpass")))
		return true
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*model.User).ID = 1
	}).Return(nil).Once()

	result, err := svc.Register(app.RegisterInput{Email: "alice@x.com", Password: "s3cretpass"})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "alice", result.User.Username)
	assert.NotEmpty(t, result.Token)
	repo.AssertExpectations(t)
}

func TestRegister_SuffixOnLocalPartCollision(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newAuthService(repo)

	// alice@x.com already claimed "alice"; a different email with the same
	// local part gets "alice1".
	repo.On("GetByEmail", "alice@y.com").Return(nil, nil).Once()
	repo.On("GetByUsername", "alice").Return(&model.User{ID: 1, Username: "alice"}, nil).Once()
	repo.On("GetByUsername", "alice1").Return(nil, nil).Once()
	repo.On("Create", mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "alice1" && u.Email == "alice@y.com"
	})).Run(func(args mock.Arguments) {
		args.Get(0).(*model.User).ID = 2
	}).Return(nil).Once()

	result, err := svc.Register(app.RegisterInput{Email: "alice@y.com", Password: "s3cretpass"})

	require.NoError(t, err)
	assert.Equal(t, "alice1", result.User.Username)
	repo.AssertExpectations(t)
}

func TestRegister_SmallestFreeSuffixWins(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newAuthService(repo)

	repo.On("GetByEmail", "bob@x.com").Return(nil, nil).Once()
	repo.On("GetByUsername", "bob").Return(&model.User{ID: 1}, nil).Once()
	repo.On("GetByUsername", "bob1").Return(&model.User{ID: 2}, nil).Once()
	repo.On("GetByUsername", "bob2").Return(nil, nil).Once()
	repo.On("Create", mock.MatchedBy(func(u *model.User) bool {
		return u.Username == "bob2"
	})).Return(nil).Once()

	result, err := svc.Register(app.RegisterInput{Email: "bob@x.com", Password: "s3cretpass"})

	require.NoError(t, err)
	assert.Equal(t, "bob2", result.User.Username)
	repo.AssertExpectations(t)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newAuthService(repo)

	repo.On("GetByEmail", "alice@x.com").Return(&model.User{ID: 1, Email: "alice@x.com"}, nil).Once()

	_, err := svc.Register(app.RegisterInput{Email: "alice@x.com", Password: "s3cretpass"})

	require.Error(t, err)
	assert.True(t, errors.Is(err, app.ErrEmailExists))
	repo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegister_MissingFields(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newAuthService(repo)

	_, err := svc.Register(app.RegisterInput{Email: "", Password: "s3cretpass"})
	assert.True(t, errors.Is(err, app.ErrInvalidInput))

	_, err = svc.Register(app.RegisterInput{Email: "alice@x.com", Password: ""})
	assert.True(t, errors.Is(err, app.ErrInvalidInput))

	repo.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestRegister_MalformedEmail(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newAuthService(repo)

	_, err := svc.Register(app.RegisterInput{Email: "not-an-email", Password: "s3cretpass"})

	assert.True(t, errors.Is(err, app.ErrInvalidEmail))
	repo.AssertNotCalled(t, "GetByEmail", mock.Anything)
}

func TestRegister_KeepsOptionalNames(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newAuthService(repo)

	repo.On("GetByEmail", "carol@x.com").Return(nil, nil).Once()
	repo.On("GetByUsername", "carol").Return(nil, nil).Once()
	repo.On("Create", mock.MatchedBy(func(u *model.User) bool {
		return u.FirstName == "Carol" && u.LastName == "Jones"
	})).Return(nil).Once()

	_, err := svc.Register(app.RegisterInput{
		Email:     "carol@x.com",
		Password:  "s3cretpass",
		FirstName: "Carol",
		LastName:  "Jones",
	})

	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestLogin_Success(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newAuthService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo.On("GetByUsername", "alice").Return(&model.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil).Once()

	result, err := svc.Login(app.LoginInput{Username: "alice", Password: "s3cretpass"})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	repo.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newAuthService(repo)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.DefaultCost)
	require.NoError(t, err)
	repo.On("GetByUsername", "alice").Return(&model.User{ID: 1, Username: "alice", PasswordHash: string(hash)}, nil).Once()

	_, err = svc.Login(app.LoginInput{Username: "alice", Password: "wrong"})

	assert.True(t, errors.Is(err, app.ErrInvalidCredential))
}

func TestLogin_UnknownUser(t *testing.T) {
	repo := new(mockUserRepository)
	svc := newAuthService(repo)

	repo.On("GetByUsername", "ghost").Return(nil, nil).Once()

	_, err := svc.Login(app.LoginInput{Username: "ghost", Password: "whatever"})

	assert.True(t, errors.Is(err, app.ErrInvalidCredential))
}
