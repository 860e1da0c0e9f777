package media

// Event - действие пользователя над медиа. Набор событий закрыт.
type Event interface {
	isEvent()
}

type (
	// Reset заменяет состояние целиком, например после перезагрузки объявления.
	Reset struct{ State State }

	AddNew struct{ Uploads []Upload }

	SetExistingAlt struct {
		ID  string
		Alt string
	}

	SetNewAlt struct {
		Index int
		Alt   string
	}

	SetPrimaryExisting struct{ ID string }

	SetPrimaryNew struct{ Index int }

	RemoveExisting struct{ ID string }

	// ReplaceExisting помечает изображение удаленным и добавляет новое на его место.
	ReplaceExisting struct {
		ID     string
		Upload Upload
	}

	RemoveNew struct{ Index int }

	RemoveExistingVideo struct{ URL string }

	AddExternalVideo struct{ URL string }

	RemoveExternalVideo struct{ URL string }

	AddNewVideos struct{ Uploads []Upload }

	RemoveNewVideo struct{ Index int }
)

func (Reset) isEvent()               {}
func (AddNew) isEvent()              {}
func (SetExistingAlt) isEvent()      {}
func (SetNewAlt) isEvent()           {}
func (SetPrimaryExisting) isEvent()  {}
func (SetPrimaryNew) isEvent()       {}
func (RemoveExisting) isEvent()      {}
func (ReplaceExisting) isEvent()     {}
func (RemoveNew) isEvent()           {}
func (RemoveExistingVideo) isEvent() {}
func (AddExternalVideo) isEvent()    {}
func (RemoveExternalVideo) isEvent() {}
func (AddNewVideos) isEvent()        {}
func (RemoveNewVideo) isEvent()      {}
