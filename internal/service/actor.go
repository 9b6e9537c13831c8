package service

import "schoolhub_backend/internal/model"

// ActorKind discriminates who is asking: nobody, an admin, or a user taking
// assessments.
type ActorKind int

const (
	ActorNone ActorKind = iota
	ActorAdmin
	ActorUser
)

type Actor struct {
	Kind   ActorKind
	Admin  *model.Admin // set when Kind == ActorAdmin
	UserID string       // set when Kind == ActorUser
}

func AdminActor(admin *model.Admin) Actor {
	return Actor{Kind: ActorAdmin, Admin: admin}
}

func UserActor(userID string) Actor {
	return Actor{Kind: ActorUser, UserID: userID}
}

func NoActor() Actor {
	return Actor{Kind: ActorNone}
}
