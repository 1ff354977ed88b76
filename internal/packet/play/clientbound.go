// Code in this file declares every PLAY-state clientbound packet name
// the original enumerates as a typed stub carrying only its name and id.
// None render real bodies yet; a gameplay layer constructs the real value
// it wants to send instead of reaching for these.
package play

import "github.com/risusan87/mcpyserver/internal/packet"

// CBoundStub is the catch-all type for a PLAY clientbound packet with no
// modeled fields; EncodeBody writes an empty body.
type CBoundStub struct {
	Name string
	ID   int32
}

func (c CBoundStub) PacketID() int32 { return c.ID }

func (CBoundStub) EncodeBody(*packet.PacketConnectionState) ([]byte, error) {
	return nil, nil
}

// clientboundNames mirrors client_bound/play.py's class order.
var clientboundNames = []string{
	"CBundleDelimiter",
	"CSpawnEntity",
	"CSpawnExperienceOrb",
	"CEntityAnimation",
	"CAwardStatistics",
	"CBlockChangeAcknowledge",
	"CSetBlockDestroyStage",
	"CBlockEntityData",
	"CBlockAction",
	"CBlockUpdate",
	"CBossBar",
	"CChangeDifficulty",
	"CChunkBatchFinished",
	"CChunkBatchStart",
	"CChunkBiome",
	"CClearTitles",
	"CCommandSuggestionsResponse",
	"CCommands",
	"CCloseContainer",
	"CSetContainerContent",
	"CSetContainerProperty",
	"CSetContainerSlot",
	"CCookieRequest",
	"CSetCooldown",
	"CChatSuggestions",
	"CPluginMessage",
	"CDamageEvent",
	"CDebugSample",
	"CDeleteMessage",
	"CDisconnect",
	"CDisguisedChatMessage",
	"CEntityEvent",
	"CTeleportEntity",
	"CExplosion",
	"CUnloadChunk",
	"CGameEvent",
	"COpenHorseScreen",
	"CHurtAnimation",
	"CInitializeWorldBorder",
	"CKeepAlive",
	"CChunkDataAndUpdateLight",
	"CWorldEvent",
	"CParticle",
	"CUpdateLight",
	"CLogin",
	"CMapData",
	"CMerchantOffers",
	"CUpdateEntityPosition",
	"CUpdateEntityPositionRotation",
	"CMoveMinecartAlongTrack",
	"CUpdateEntityRotation",
	"CMoveVehicle",
	"COpenBook",
	"COpenScreen",
	"COpenSignEditor",
	"CPingRequest",
	"CPongResponse",
	"CPlaceGhostRecipe",
	"CPlayerAbilities",
	"CPlayerChatMessage",
	"CEndCombat",
	"CEnterCombat",
	"CCombatDeath",
	"CPlayerInfoRemove",
	"CPlayerInfoUpdate",
	"CLookAt",
	"CSynchronizePlayerPosition",
	"CPlayerRotation",
	"CRecipeBookAdd",
	"CRecipeBookRemove",
	"CRecipeBookSettings",
	"CRemoveEntities",
	"CRemoveEntityEffect",
	"CResetScore",
	"CRemoveResourcePack",
	"CAddResourcePack",
	"CRespawn",
	"CSetHeadRotation",
	"CUpdateSectionBlocks",
	"CSelectAdvancementTab",
	"CServerData",
	"CSetActionBarText",
	"CSetBorderCenter",
	"CSetBorderLerpSize",
	"CSetBorderSize",
	"CSetBorderWarningDelay",
	"CSetBorderWarningDistance",
	"CSetCamera",
	"CSetCenterChunk",
	"CSetRenderDistance",
	"CSetCursorItem",
	"CSetDefaultSpawnPosition",
	"CDisplayObjective",
	"CSetEntityMetadata",
	"CLinkEntities",
	"CSetEntityVelocity",
	"CSetEquipment",
	"CSetExperience",
	"CSetHealth",
	"CSetHeldItem",
	"CUpdateObjectives",
	"CSetPassengers",
	"CSetPlayerInventorySlot",
	"CUpdateTeams",
	"CUpdateScore",
	"CSetSimulationDistance",
	"CSetSubtitleText",
	"CUpdateTime",
	"CSetTitleText",
	"CSetTitleAnimationTimes",
	"CEntitySoundEffect",
	"CSoundEffect",
	"CStartConfiguration",
	"CStopSound",
	"CStoreCookie",
	"CSystemChatMessage",
	"CSetTabListHeaderFooter",
	"CTagQueryResponse",
	"CPickupItem",
	"CSynchronizeVehiclePosition",
	"CSetTickingState",
	"CStepTick",
	"CTransfer",
	"CUpdateAdvancements",
	"CUpdateAttributes",
	"CEntityEffect",
	"CUpdateRecipes",
	"CUpdateTags",
	"CProjectilePower",
	"CCustomReportDetails",
	"CServerLinks",
}

// ClientboundStubs returns a fresh CBoundStub for every registered PLAY
// clientbound packet name, indexed by its assigned id. A gameplay layer
// uses this to discover the (name, id) surface without hand maintaining
// a second copy of the list.
func ClientboundStubs() []CBoundStub {
	stubs := make([]CBoundStub, len(clientboundNames))
	for i, name := range clientboundNames {
		stubs[i] = CBoundStub{Name: name, ID: int32(i)}
	}
	return stubs
}
