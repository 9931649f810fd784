package repository

import (
	"context"
	"sync"

	"taskboard/internal/model"
)

// MemoryStore is the process-lifetime backend. One RWMutex guards every
// collection, so a board and its default state become visible together and
// id assignment never races.
type MemoryStore struct {
	mu     sync.RWMutex
	opts   Options
	users  *arena[model.User]
	boards *arena[model.Board]
	states *arena[model.State]
	tasks  *arena[model.Task]
}

var (
	_ UserRepositoryInterface  = (*MemoryStore)(nil)
	_ BoardRepositoryInterface = (*MemoryStore)(nil)
)

func NewMemoryStore(opts Options) *MemoryStore {
	return &MemoryStore{
		opts:   opts,
		users:  newArena[model.User](),
		boards: newArena[model.Board](),
		states: newArena[model.State](),
		tasks:  newArena[model.Task](),
	}
}

// Reset drops all data but keeps the id counters, so ids stay unique for
// the life of the process.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users.items, s.users.order = make(map[int64]model.User), nil
	s.boards.items, s.boards.order = make(map[int64]model.Board), nil
	s.states.items, s.states.order = make(map[int64]model.State), nil
	s.tasks.items, s.tasks.order = make(map[int64]model.Task), nil
}

func (s *MemoryStore) Create(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.users.some(func(u model.User) bool { return u.Username == user.Username }) {
		return ErrUserExists
	}
	user.ID = s.users.nextID()
	s.users.put(user.ID, *user)
	return nil
}

func (s *MemoryStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := s.users.filter(func(u model.User) bool { return u.Username == username })
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users.get(id)
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (s *MemoryStore) CreateBoard(ctx context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	board.ID = s.boards.nextID()
	s.boards.put(board.ID, *board)

	state := model.State{ID: s.states.nextID(), BoardID: board.ID, Name: model.DefaultStateName}
	s.states.put(state.ID, state)
	return nil
}

func (s *MemoryStore) ListBoards(ctx context.Context, ownerID int64) ([]model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.boards.filter(func(b model.Board) bool { return b.OwnerID == ownerID }), nil
}

// ownedBoard must be called with s.mu held.
func (s *MemoryStore) ownedBoard(boardID, callerID int64) (model.Board, bool) {
	board, ok := s.boards.get(boardID)
	if !ok || board.OwnerID != callerID {
		return model.Board{}, false
	}
	return board, true
}

func (s *MemoryStore) CreateState(ctx context.Context, callerID int64, state *model.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ownedBoard(state.BoardID, callerID); !ok {
		return ErrBoardNotFound
	}
	state.ID = s.states.nextID()
	s.states.put(state.ID, *state)
	return nil
}

func (s *MemoryStore) ListStates(ctx context.Context, boardID, callerID int64) ([]model.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.ownedBoard(boardID, callerID); !ok {
		return nil, ErrBoardNotFound
	}
	return s.states.filter(func(st model.State) bool { return st.BoardID == boardID }), nil
}

func (s *MemoryStore) UpdateState(ctx context.Context, stateID, callerID int64, name *string) (*model.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.states.get(stateID)
	if !ok {
		return nil, ErrStateNotFound
	}
	if _, owned := s.ownedBoard(state.BoardID, callerID); !owned {
		return nil, ErrStateNotFound
	}
	if name != nil {
		state.Name = *name
	}
	s.states.put(state.ID, state)
	return &state, nil
}

func (s *MemoryStore) DeleteState(ctx context.Context, boardID, stateID, callerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ownedBoard(boardID, callerID); !ok {
		return ErrBoardNotFound
	}
	state, ok := s.states.get(stateID)
	if !ok || state.BoardID != boardID {
		return ErrStateNotFound
	}
	if s.tasks.some(func(t model.Task) bool { return t.StateID == stateID }) {
		return ErrStateInUse
	}
	s.states.remove(stateID)
	return nil
}

func (s *MemoryStore) ListTasks(ctx context.Context, boardID, callerID int64) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.ownedBoard(boardID, callerID); !ok {
		return nil, ErrBoardNotFound
	}
	return s.tasks.filter(func(t model.Task) bool { return t.BoardID == boardID }), nil
}

func (s *MemoryStore) CreateTask(ctx context.Context, callerID int64, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ownedBoard(task.BoardID, callerID); !ok {
		return ErrBoardNotFound
	}
	if s.opts.StrictTaskScope {
		state, ok := s.states.get(task.StateID)
		if !ok || state.BoardID != task.BoardID {
			return ErrStateNotFound
		}
	}
	if task.Priority == "" {
		task.Priority = model.PriorityNormal
	}
	task.ID = s.tasks.nextID()
	s.tasks.put(task.ID, *task)
	return nil
}

func (s *MemoryStore) UpdateTask(ctx context.Context, taskID, callerID int64, patch TaskPatch) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks.get(taskID)
	if !ok {
		return nil, ErrTaskNotFound
	}
	if s.opts.StrictTaskScope {
		if _, owned := s.ownedBoard(task.BoardID, callerID); !owned {
			return nil, ErrTaskNotFound
		}
	}
	if patch.StateID != nil {
		state, ok := s.states.get(*patch.StateID)
		if !ok {
			return nil, ErrStateNotFound
		}
		if s.opts.StrictTaskScope && state.BoardID != task.BoardID {
			return nil, ErrStateNotFound
		}
	}

	patch.apply(&task)
	s.tasks.put(task.ID, task)
	return &task, nil
}

// DeleteTask succeeds whether or not the task exists.
func (s *MemoryStore) DeleteTask(ctx context.Context, taskID, callerID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks.get(taskID)
	if !ok {
		return nil
	}
	if s.opts.StrictTaskScope {
		if _, owned := s.ownedBoard(task.BoardID, callerID); !owned {
			return nil
		}
	}
	s.tasks.remove(taskID)
	return nil
}
